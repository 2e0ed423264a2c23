package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/detailing-dashboard/pkg/utils"
)

type SelectionResponse struct {
	City              *string `json:"city"`
	StartDate         string  `json:"start_date,omitempty"`
	EndDate           string  `json:"end_date,omitempty"`
	DateFilterApplied bool    `json:"date_filter_applied"`
}

type KPIResponse struct {
	TotalRevenue     float64  `json:"total_revenue"`
	TransactionCount int      `json:"transaction_count"`
	AverageTicket    *float64 `json:"average_ticket"`
	HasData          bool     `json:"has_data"`
}

type ServiceRevenueResponse struct {
	Service string  `json:"service"`
	Amount  float64 `json:"amount"`
	Share   float64 `json:"share"` // percent of total revenue
}

type DailyRevenueResponse struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type DashboardResponse struct {
	Filters          SelectionResponse        `json:"filters"`
	KPIs             KPIResponse              `json:"kpis"`
	RevenueByService []ServiceRevenueResponse `json:"revenue_by_service"`
	DailyRevenue     []DailyRevenueResponse   `json:"daily_revenue"`
	Table            TablePage                `json:"table"`
}

// NewDashboardResponse flattens a pipeline result and one table page into
// the API payload.
func NewDashboardResponse(result *PipelineResult, table TablePage) *DashboardResponse {
	return &DashboardResponse{
		Filters:          NewSelectionResponse(result.Selection),
		KPIs:             NewKPIResponse(result.KPIs),
		RevenueByService: NewServiceRevenueResponse(result.RevenueByService, result.KPIs.TotalRevenue),
		DailyRevenue:     NewDailyRevenueResponse(result.DailyRevenue),
		Table:            table,
	}
}

func NewSelectionResponse(sel Selection) SelectionResponse {
	return SelectionResponse{
		City:              sel.City,
		StartDate:         utils.FormatDate(sel.StartDate),
		EndDate:           utils.FormatDate(sel.EndDate),
		DateFilterApplied: sel.HasDateRange(),
	}
}

func NewKPIResponse(k KPIs) KPIResponse {
	resp := KPIResponse{
		TotalRevenue:     utils.Money(k.TotalRevenue),
		TransactionCount: k.TransactionCount,
		HasData:          k.HasData(),
	}
	if k.AverageTicket != nil {
		avg := utils.Money(*k.AverageTicket)
		resp.AverageTicket = &avg
	}
	return resp
}

func NewServiceRevenueResponse(items []ServiceRevenue, total decimal.Decimal) []ServiceRevenueResponse {
	out := make([]ServiceRevenueResponse, 0, len(items))
	for _, item := range items {
		share := 0.0
		if !total.IsZero() {
			share = utils.Money(item.Amount.Div(total).Mul(decimal.NewFromInt(100)))
		}
		out = append(out, ServiceRevenueResponse{
			Service: item.Service,
			Amount:  utils.Money(item.Amount),
			Share:   share,
		})
	}
	return out
}

func NewDailyRevenueResponse(items []DailyRevenue) []DailyRevenueResponse {
	out := make([]DailyRevenueResponse, 0, len(items))
	for _, item := range items {
		out = append(out, DailyRevenueResponse{
			Date:   item.Date.Format(time.DateOnly),
			Amount: utils.Money(item.Amount),
		})
	}
	return out
}
