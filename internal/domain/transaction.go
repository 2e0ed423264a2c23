package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one row of the dataset
type Transaction struct {
	City        string
	ServiceDate time.Time // calendar day, UTC midnight
	Service     string
	Amount      decimal.Decimal
	// Fields holds every raw cell of the row in source column order,
	// including the columns the dashboard does not interpret.
	Fields []string
}

// Table is the raw tabular payload a source hands to the loader
type Table struct {
	Columns []string
	Rows    [][]string
}
