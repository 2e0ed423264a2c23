package dashboarding

import (
	"context"

	"github.com/vfg2006/detailing-dashboard/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_dashboarder.go -package=mocks

// Dashboarder serves dashboard views over the loaded dataset
type Dashboarder interface {
	// Options lists the selector choices and dataset metadata
	Options() *domain.FilterOptions

	// Compute runs the filter-aggregate pipeline for one selection
	Compute(ctx context.Context, sel domain.Selection) *domain.PipelineResult

	// Columns returns the source column names in order
	Columns() []string
}
