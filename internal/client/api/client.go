// Package api is the single point of outbound REST calls. A RESTClient runs
// every call through an ordered interceptor pipeline: request interceptors
// attach correlation ids and the bearer token, response interceptors
// normalize failures into a typed *Error with a user-facing message.
package api

import (
	"context"

	"github.com/dmitrijs2005/vacstats/internal/client/models"
)

// Client is the outbound surface consumed by the services layer.
type Client interface {
	Close() error
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	Health(ctx context.Context) error
	SummaryStats(ctx context.Context) (*models.SummaryStats, error)
	VacationStats(ctx context.Context) (*models.VacationStats, error)
	TotalUsers(ctx context.Context) (int, error)
	TotalLikes(ctx context.Context) (int, error)
	LikesDistribution(ctx context.Context) ([]models.DestinationLikes, error)
}
