package dashboarding

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/detailing-dashboard/internal/domain"
	"github.com/vfg2006/detailing-dashboard/pkg/utils"
)

// Compute derives the dashboard view of ds for one selection.
//
// The city selector keeps exact (case-sensitive) matches. The date range is
// applied only when both bounds are present and is inclusive on both ends;
// a single bound leaves the records untouched. The function has no side
// effects and the same inputs always produce the same result.
func Compute(ds *domain.Dataset, sel domain.Selection) *domain.PipelineResult {
	sel = normalizeSelection(sel)
	records := filterRecords(ds.Records(), sel)

	return &domain.PipelineResult{
		Selection:        sel,
		Records:          records,
		KPIs:             computeKPIs(records),
		RevenueByService: revenueByService(records),
		DailyRevenue:     dailyRevenue(records),
	}
}

func normalizeSelection(sel domain.Selection) domain.Selection {
	if sel.StartDate != nil {
		d := utils.DateOf(*sel.StartDate)
		sel.StartDate = &d
	}
	if sel.EndDate != nil {
		d := utils.DateOf(*sel.EndDate)
		sel.EndDate = &d
	}
	return sel
}

func filterRecords(all []domain.Transaction, sel domain.Selection) []domain.Transaction {
	filtered := make([]domain.Transaction, 0, len(all))
	for _, r := range all {
		if sel.City != nil && r.City != *sel.City {
			continue
		}
		if sel.HasDateRange() && (r.ServiceDate.Before(*sel.StartDate) || r.ServiceDate.After(*sel.EndDate)) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func computeKPIs(records []domain.Transaction) domain.KPIs {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}

	kpis := domain.KPIs{
		TotalRevenue:     total,
		TransactionCount: len(records),
	}

	if len(records) > 0 {
		avg := total.Div(decimal.NewFromInt(int64(len(records))))
		kpis.AverageTicket = &avg
	}

	return kpis
}

func revenueByService(records []domain.Transaction) []domain.ServiceRevenue {
	totals := make(map[string]decimal.Decimal)
	for _, r := range records {
		totals[r.Service] = totals[r.Service].Add(r.Amount)
	}

	out := make([]domain.ServiceRevenue, 0, len(totals))
	for service, amount := range totals {
		out = append(out, domain.ServiceRevenue{Service: service, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Service < out[j].Service })

	return out
}

func dailyRevenue(records []domain.Transaction) []domain.DailyRevenue {
	totals := make(map[time.Time]decimal.Decimal)
	for _, r := range records {
		totals[r.ServiceDate] = totals[r.ServiceDate].Add(r.Amount)
	}

	out := make([]domain.DailyRevenue, 0, len(totals))
	for date, amount := range totals {
		out = append(out, domain.DailyRevenue{Date: date, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return out
}
