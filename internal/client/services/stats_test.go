package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vacstats/internal/client/api"
	"github.com/dmitrijs2005/vacstats/internal/client/models"
)

// statsAPI extends fakeAPI with canned stats payloads.
type statsAPI struct {
	fakeAPI
	Summary    *models.SummaryStats
	SummaryErr error
}

func (f *statsAPI) SummaryStats(ctx context.Context) (*models.SummaryStats, error) {
	return f.Summary, f.SummaryErr
}

func (f *statsAPI) VacationStats(ctx context.Context) (*models.VacationStats, error) {
	return &models.VacationStats{PastVacations: 1}, nil
}

func TestSummary_PassThrough(t *testing.T) {
	want := &models.SummaryStats{TotalUsers: 5, TotalLikes: 10}
	s := NewStatsService(&statsAPI{Summary: want})

	got, err := s.Summary(context.Background())
	require.NoError(t, err)
	require.Same(t, want, got)
}

func TestSummary_ErrorSurfacesUnchanged(t *testing.T) {
	apiErr := &api.Error{Kind: api.KindServer, Status: 500, UserMessage: "Server error. Please try again later."}
	s := NewStatsService(&statsAPI{SummaryErr: apiErr})

	_, err := s.Summary(context.Background())
	require.ErrorIs(t, err, &api.Error{Kind: api.KindServer})
	require.Equal(t, "Server error. Please try again later.", err.Error())
}

func TestComponentCalls_PassThrough(t *testing.T) {
	s := NewStatsService(&statsAPI{})

	vs, err := s.Vacations(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, vs.PastVacations)
}
