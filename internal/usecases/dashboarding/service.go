package dashboarding

import (
	"context"
	"time"

	"github.com/vfg2006/detailing-dashboard/internal/domain"
	"github.com/vfg2006/detailing-dashboard/internal/metrics"
	"github.com/vfg2006/detailing-dashboard/pkg/log"
	"github.com/vfg2006/detailing-dashboard/pkg/utils"
)

type DashboardService struct {
	dataset *domain.Dataset
	metrics *metrics.Metrics
}

func NewDashboardService(dataset *domain.Dataset, m *metrics.Metrics) Dashboarder {
	m.SetDatasetRecords(dataset.Len())

	return &DashboardService{
		dataset: dataset,
		metrics: m,
	}
}

func (s *DashboardService) Options() *domain.FilterOptions {
	opts := &domain.FilterOptions{
		Cities:         s.dataset.DistinctCities(),
		Columns:        s.dataset.Columns(),
		DatasetVersion: s.dataset.Version(),
		DatasetSource:  s.dataset.Source(),
		TotalRecords:   s.dataset.Len(),
		LoadedAt:       s.dataset.LoadedAt(),
	}

	if minDate, maxDate, ok := s.dataset.DateBounds(); ok {
		opts.StartDate = minDate.Format(time.DateOnly)
		opts.EndDate = maxDate.Format(time.DateOnly)
	}

	return opts
}

func (s *DashboardService) Columns() []string {
	return s.dataset.Columns()
}

func (s *DashboardService) Compute(ctx context.Context, sel domain.Selection) *domain.PipelineResult {
	start := time.Now()
	result := Compute(s.dataset, sel)
	elapsed := time.Since(start)

	s.metrics.ObservePipeline(elapsed, len(result.Records))

	fields := log.Fields{
		"start_date": utils.FormatDate(result.Selection.StartDate),
		"end_date":   utils.FormatDate(result.Selection.EndDate),
		"records":    len(result.Records),
	}
	if sel.City != nil {
		fields["city"] = *sel.City
	}
	log.ForContext(ctx).WithFields(fields).Debugf("dashboard computed in %s", elapsed)

	if (sel.StartDate == nil) != (sel.EndDate == nil) {
		log.ForContext(ctx).Debug("single date bound supplied, date filter skipped")
	}

	return result
}
