package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/detailing-dashboard/internal/api/handler"
	"github.com/vfg2006/detailing-dashboard/internal/domain"
	"github.com/vfg2006/detailing-dashboard/internal/usecases/dashboarding/mocks"
	"go.uber.org/mock/gomock"
)

func TestCharts(t *testing.T) {
	tests := []struct {
		name    string
		handler func(svc *mocks.MockDashboarder) http.Handler
		query   string
		sel     domain.Selection
		want    string
	}{
		{
			name:    "service revenue",
			handler: func(svc *mocks.MockDashboarder) http.Handler { return handler.ServiceRevenueChart(svc) },
			sel:     domain.Selection{},
			want:    "Polish",
		},
		{
			name:    "service revenue without data",
			handler: func(svc *mocks.MockDashboarder) http.Handler { return handler.ServiceRevenueChart(svc) },
			query:   "city=Atlantis",
			sel:     domain.Selection{City: strPtr("Atlantis")},
			want:    "No data for this selection",
		},
		{
			name:    "daily revenue",
			handler: func(svc *mocks.MockDashboarder) http.Handler { return handler.DailyRevenueChart(svc) },
			query:   "city=NY",
			sel:     domain.Selection{City: strPtr("NY")},
			want:    "<svg",
		},
		{
			name:    "daily revenue without data",
			handler: func(svc *mocks.MockDashboarder) http.Handler { return handler.DailyRevenueChart(svc) },
			query:   "city=Atlantis",
			sel:     domain.Selection{City: strPtr("Atlantis")},
			want:    "Daily Revenue Trend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMock(t)
			svc.EXPECT().Compute(gomock.Any(), tt.sel).Return(sampleResult(tt.sel))

			rec := httptest.NewRecorder()
			tt.handler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/charts/x.svg?"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestCharts_InvalidDate(t *testing.T) {
	svc := newMock(t)

	rec := httptest.NewRecorder()
	handler.DailyRevenueChart(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/charts/daily-revenue.svg?end_date=03/01/2024", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
