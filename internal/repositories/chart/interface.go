package chart

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/nairobininja/fina/internal/repositories/chart Repository

import (
	"context"

	"github.com/nairobininja/fina/internal/models"
)

// Repository defines the interface for the chart catalog and per-user
// chart ownership
type Repository interface {
	// SaveChart upserts a chart into the catalog
	SaveChart(ctx context.Context, input *SaveChartInput) error

	// GetChart retrieves a catalog chart by reference
	GetChart(ctx context.Context, input *GetChartInput) (*models.Chart, error)

	// ListCharts retrieves the whole catalog
	ListCharts(ctx context.Context) (*ListChartsOutput, error)

	// SetOwnership replaces the set of charts a user owns
	SetOwnership(ctx context.Context, input *SetOwnershipInput) error

	// QueryCommonCharts returns the charts owned by every given user,
	// within the difficulty window and matching the filters
	QueryCommonCharts(ctx context.Context, input *QueryCommonChartsInput) (*QueryCommonChartsOutput, error)
}
