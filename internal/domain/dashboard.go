package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Selection carries the selector values of one dashboard interaction.
// A nil field means the selector was left empty.
type Selection struct {
	City      *string
	StartDate *time.Time
	EndDate   *time.Time
}

// HasDateRange reports whether both date bounds are set. A single bound
// does not filter anything.
func (s Selection) HasDateRange() bool {
	return s.StartDate != nil && s.EndDate != nil
}

// KPIs are the headline numbers of a filtered view.
// AverageTicket is nil when the view holds no transactions.
type KPIs struct {
	TotalRevenue     decimal.Decimal
	TransactionCount int
	AverageTicket    *decimal.Decimal
}

func (k KPIs) HasData() bool {
	return k.AverageTicket != nil
}

type ServiceRevenue struct {
	Service string
	Amount  decimal.Decimal
}

type DailyRevenue struct {
	Date   time.Time
	Amount decimal.Decimal
}

// PipelineResult is the derived view of one selection over the dataset
type PipelineResult struct {
	Selection        Selection
	Records          []Transaction
	KPIs             KPIs
	RevenueByService []ServiceRevenue // sorted by service name
	DailyRevenue     []DailyRevenue   // ascending by date
}

// FilterOptions populates the selectors
type FilterOptions struct {
	Cities         []string  `json:"cities"`
	StartDate      string    `json:"start_date,omitempty"` // YYYY-MM-DD, empty for an empty dataset
	EndDate        string    `json:"end_date,omitempty"`
	Columns        []string  `json:"columns"`
	DatasetVersion string    `json:"dataset_version"`
	DatasetSource  string    `json:"dataset_source"`
	TotalRecords   int       `json:"total_records"`
	LoadedAt       time.Time `json:"loaded_at"`
}

// TablePage is one page of the transactions table
type TablePage struct {
	Columns    []string            `json:"columns"`
	Rows       []map[string]string `json:"rows"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalRows  int                 `json:"total_rows"`
	TotalPages int                 `json:"total_pages"`
}

func (p TablePage) HasPrevious() bool {
	return p.Page > 1
}

func (p TablePage) HasNext() bool {
	return p.Page < p.TotalPages
}
