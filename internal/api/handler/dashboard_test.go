package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/detailing-dashboard/internal/api/handler"
	"github.com/vfg2006/detailing-dashboard/internal/domain"
	"github.com/vfg2006/detailing-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/detailing-dashboard/internal/usecases/dashboarding/mocks"
	"go.uber.org/mock/gomock"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var columns = []string{"City", "Date of Service", "Service", "Amount"}

func date(s string) *time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return &t
}

func strPtr(s string) *string {
	return &s
}

func sampleResult(sel domain.Selection) *domain.PipelineResult {
	ds := domain.NewDataset("csv:test.csv", "v1", time.Time{}, columns, []domain.Transaction{
		{City: "NY", ServiceDate: *date("2024-03-01"), Service: "Polish", Amount: decimal.NewFromInt(100), Fields: []string{"NY", "2024-03-01", "Polish", "100"}},
		{City: "LA", ServiceDate: *date("2024-03-02"), Service: "Wash", Amount: decimal.NewFromInt(50), Fields: []string{"LA", "2024-03-02", "Wash", "50"}},
	})
	return dashboarding.Compute(ds, sel)
}

func newMock(t *testing.T) *mocks.MockDashboarder {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockDashboarder(ctrl)
	svc.EXPECT().Columns().Return(columns).AnyTimes()
	return svc
}

func TestGetDashboard(t *testing.T) {
	svc := newMock(t)
	sel := domain.Selection{City: strPtr("NY"), StartDate: date("2024-03-01"), EndDate: date("2024-03-31")}
	svc.EXPECT().Compute(gomock.Any(), sel).Return(sampleResult(sel))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard?city=NY&start_date=2024-03-01&end_date=2024-03-31", nil)
	handler.GetDashboard(svc, 10).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body domain.DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "NY", *body.Filters.City)
	assert.True(t, body.Filters.DateFilterApplied)
	assert.Equal(t, 100.0, body.KPIs.TotalRevenue)
	assert.Equal(t, 1, body.KPIs.TransactionCount)
	require.NotNil(t, body.KPIs.AverageTicket)
	assert.Equal(t, 100.0, *body.KPIs.AverageTicket)
	assert.Equal(t, []domain.ServiceRevenueResponse{{Service: "Polish", Amount: 100, Share: 100}}, body.RevenueByService)
	assert.Equal(t, []domain.DailyRevenueResponse{{Date: "2024-03-01", Amount: 100}}, body.DailyRevenue)
	assert.Equal(t, 1, body.Table.TotalRows)
	assert.Equal(t, "Polish", body.Table.Rows[0]["Service"])
}

func TestGetDashboard_NoDataAverageIsNull(t *testing.T) {
	svc := newMock(t)
	sel := domain.Selection{City: strPtr("Atlantis")}
	svc.EXPECT().Compute(gomock.Any(), sel).Return(sampleResult(sel))

	rec := httptest.NewRecorder()
	handler.GetDashboard(svc, 10).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard?city=Atlantis", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"average_ticket":null`)
	assert.Contains(t, rec.Body.String(), `"has_data":false`)
	assert.Contains(t, rec.Body.String(), `"revenue_by_service":[]`)
}

func TestGetDashboard_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		param string
	}{
		{name: "bad start date", query: "start_date=2024-13-01", param: "start_date"},
		{name: "bad end date", query: "start_date=2024-03-01&end_date=yesterday", param: "end_date"},
		{name: "bad page", query: "page=two", param: "page"},
		{name: "zero page size", query: "page_size=0", param: "page_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMock(t)

			rec := httptest.NewRecorder()
			handler.GetDashboard(svc, 10).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard?"+tt.query, nil))

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "VAL_003", body["code"])
			assert.Equal(t, tt.param, body["details"].(map[string]any)["param"])
		})
	}
}

func TestGetTransactions_Pagination(t *testing.T) {
	svc := newMock(t)
	svc.EXPECT().Compute(gomock.Any(), domain.Selection{}).Return(sampleResult(domain.Selection{}))

	rec := httptest.NewRecorder()
	handler.GetTransactions(svc, 10).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/transactions?page=2&page_size=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.TablePage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "LA", page.Rows[0]["City"])
}

func TestGetFilters(t *testing.T) {
	svc := newMock(t)
	svc.EXPECT().Options().Return(&domain.FilterOptions{
		Cities:         []string{"LA", "NY"},
		StartDate:      "2024-03-01",
		EndDate:        "2024-03-02",
		Columns:        columns,
		DatasetVersion: "v1",
		TotalRecords:   2,
	})

	rec := httptest.NewRecorder()
	handler.GetFilters(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/filters", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var opts domain.FilterOptions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []string{"LA", "NY"}, opts.Cities)
	assert.Equal(t, "2024-03-01", opts.StartDate)
}

func TestGetDashboard_CityMatchesOfferedValueExactly(t *testing.T) {
	ds := domain.NewDataset("csv:test.csv", "v1", time.Time{}, columns, []domain.Transaction{
		{City: "Pune ", ServiceDate: *date("2024-03-01"), Service: "Polish", Amount: decimal.NewFromInt(100), Fields: []string{"Pune ", "2024-03-01", "Polish", "100"}},
		{City: "Delhi", ServiceDate: *date("2024-03-02"), Service: "Wash", Amount: decimal.NewFromInt(50), Fields: []string{"Delhi", "2024-03-02", "Wash", "50"}},
	})
	svc := dashboarding.NewDashboardService(ds, nil)

	cities := svc.Options().Cities
	require.Equal(t, []string{"Delhi", "Pune "}, cities)

	tests := []struct {
		name  string
		city  string
		count int
	}{
		{name: "padded city as offered", city: cities[1], count: 1},
		{name: "trimmed spelling is a different city", city: "Pune", count: 0},
		{name: "blank city means no filter", city: "  ", count: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := url.Values{"city": {tt.city}}

			rec := httptest.NewRecorder()
			handler.GetDashboard(svc, 10).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard?"+query.Encode(), nil))

			require.Equal(t, http.StatusOK, rec.Code)

			var body domain.DashboardResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.count, body.KPIs.TransactionCount)
		})
	}
}

func sampleResultFor(_ context.Context, sel domain.Selection) *domain.PipelineResult {
	return sampleResult(sel)
}
