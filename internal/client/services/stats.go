package services

import (
	"context"

	"github.com/dmitrijs2005/vacstats/internal/client/api"
	"github.com/dmitrijs2005/vacstats/internal/client/models"
)

// StatsService exposes the read-only statistics calls. It holds no state,
// caches nothing, and never retries: transport failures surface to the
// caller unchanged, already normalized by the REST client.
type StatsService struct {
	api api.Client
}

func NewStatsService(apiClient api.Client) *StatsService {
	return &StatsService{api: apiClient}
}

// Summary fetches all dashboard figures in one round trip. It exists so a
// single screen render does not cost four calls.
func (s *StatsService) Summary(ctx context.Context) (*models.SummaryStats, error) {
	return s.api.SummaryStats(ctx)
}

func (s *StatsService) Vacations(ctx context.Context) (*models.VacationStats, error) {
	return s.api.VacationStats(ctx)
}

func (s *StatsService) TotalUsers(ctx context.Context) (int, error) {
	return s.api.TotalUsers(ctx)
}

func (s *StatsService) TotalLikes(ctx context.Context) (int, error) {
	return s.api.TotalLikes(ctx)
}

func (s *StatsService) LikesDistribution(ctx context.Context) ([]models.DestinationLikes, error) {
	return s.api.LikesDistribution(ctx)
}
