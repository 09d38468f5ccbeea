package services

import (
	"context"

	"github.com/boxboard/apiserver/types"
)

// Bounded pages for the dashboard and statistics views.
const (
	DueAssignmentLimit = 10
	TopContainerLimit  = 10
)

// ReportRepository defines the read-only aggregate queries.
type ReportRepository interface {
	DashboardCounts(ctx context.Context) (types.DashboardCounts, error)
	UserActivitySummaries(ctx context.Context) ([]types.UserActivitySummary, error)
	StatusDistribution(ctx context.Context) ([]types.StatusCount, error)
	DueAssignments(ctx context.Context, limit int) ([]types.DueAssignment, error)
	ItemsPerLocation(ctx context.Context) ([]types.LocationItemCount, error)
	ItemsDetectedByMonth(ctx context.Context) ([]types.MonthlyCount, error)
	CompletionsByMonth(ctx context.Context) ([]types.MonthlyCount, error)
	UserPerformances(ctx context.Context) ([]types.UserPerformance, error)
	TopContainers(ctx context.Context, limit int) ([]types.ContainerUsage, error)
}

// Dashboard bundles the aggregates shown on the main dashboard.
type Dashboard struct {
	Counts         types.DashboardCounts       `json:"contatori"`
	PerUser        []types.UserActivitySummary `json:"attivita_per_utente"`
	ByStatus       []types.StatusCount         `json:"oggetti_per_stato"`
	DueAssignments []types.DueAssignment       `json:"attivita_in_scadenza"`
}

// Statistics bundles the advanced statistics view.
type Statistics struct {
	PerLocation     []types.LocationItemCount `json:"oggetti_per_location"`
	DetectedByMonth []types.MonthlyCount      `json:"rilevamenti_per_mese"`
	DoneByMonth     []types.MonthlyCount      `json:"completamenti_per_mese"`
	Performance     []types.UserPerformance   `json:"performance_utenti"`
	TopContainers   []types.ContainerUsage    `json:"contenitori_piu_usati"`
}

// ReportService assembles read-only reports for the dashboard,
// statistics views and their REST counterparts.
type ReportService struct {
	repo ReportRepository
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) Dashboard(ctx context.Context) (Dashboard, error) {
	counts, err := s.repo.DashboardCounts(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	perUser, err := s.repo.UserActivitySummaries(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	byStatus, err := s.repo.StatusDistribution(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	due, err := s.repo.DueAssignments(ctx, DueAssignmentLimit)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Counts:         counts,
		PerUser:        perUser,
		ByStatus:       byStatus,
		DueAssignments: due,
	}, nil
}

func (s *ReportService) Statistics(ctx context.Context) (Statistics, error) {
	perLocation, err := s.repo.ItemsPerLocation(ctx)
	if err != nil {
		return Statistics{}, err
	}
	detected, err := s.repo.ItemsDetectedByMonth(ctx)
	if err != nil {
		return Statistics{}, err
	}
	done, err := s.repo.CompletionsByMonth(ctx)
	if err != nil {
		return Statistics{}, err
	}
	performance, err := s.repo.UserPerformances(ctx)
	if err != nil {
		return Statistics{}, err
	}
	containers, err := s.repo.TopContainers(ctx, TopContainerLimit)
	if err != nil {
		return Statistics{}, err
	}

	return Statistics{
		PerLocation:     perLocation,
		DetectedByMonth: detected,
		DoneByMonth:     done,
		Performance:     performance,
		TopContainers:   containers,
	}, nil
}
