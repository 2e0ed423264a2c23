package loading

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/detailing-dashboard/internal/domain"
	"github.com/vfg2006/detailing-dashboard/pkg/log"
	"github.com/vfg2006/detailing-dashboard/pkg/utils"
)

// Columns names the required columns in the source header
type Columns struct {
	City        string
	ServiceDate string
	Service     string
	Amount      string
}

// DefaultColumns matches the header of the detailing transactions export
var DefaultColumns = Columns{
	City:        "City",
	ServiceDate: "Date of Service",
	Service:     "Service",
	Amount:      "Amount",
}

type Options struct {
	Columns     Columns
	DateLayouts []string
}

type Loader struct {
	opts  Options
	now   func() time.Time
	newID func() (string, error)
}

func NewLoader(opts Options) *Loader {
	if opts.Columns == (Columns{}) {
		opts.Columns = DefaultColumns
	}
	if len(opts.DateLayouts) == 0 {
		opts.DateLayouts = []string{time.DateOnly}
	}

	return &Loader{
		opts:  opts,
		now:   time.Now,
		newID: utils.GenerateID,
	}
}

// Load reads src once and builds the immutable dataset. Any failure is
// returned as a *LoadError.
func (l *Loader) Load(ctx context.Context, src Source) (*domain.Dataset, error) {
	logger := log.ForContext(ctx).WithField("source", src.Name())
	startTime := time.Now()

	table, err := src.Read(ctx)
	if err != nil {
		return nil, &LoadError{Err: ErrSourceUnreadable, Source: src.Name(), Details: err.Error()}
	}

	records, err := l.parse(src.Name(), table)
	if err != nil {
		return nil, err
	}

	version, err := l.newID()
	if err != nil {
		return nil, &LoadError{Err: ErrSourceUnreadable, Source: src.Name(), Details: fmt.Sprintf("generate version: %v", err)}
	}

	columns := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		columns[i] = normalizeHeader(c)
	}

	ds := domain.NewDataset(src.Name(), version, l.now(), columns, records)

	logger.WithFields(log.Fields{
		"records":     ds.Len(),
		"cities":      len(ds.DistinctCities()),
		"version":     ds.Version(),
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Info("dataset loaded")

	return ds, nil
}

func (l *Loader) parse(source string, table *domain.Table) ([]domain.Transaction, error) {
	if table == nil || len(table.Columns) == 0 {
		return nil, &LoadError{Err: ErrMissingColumn, Source: source, Details: "source has no header"}
	}

	index := make(map[string]int, len(table.Columns))
	for i, name := range table.Columns {
		name = normalizeHeader(name)
		if _, dup := index[name]; dup {
			return nil, &LoadError{Err: ErrDuplicateColumn, Source: source, Column: name}
		}
		index[name] = i
	}

	cols := l.opts.Columns
	positions := make(map[string]int, 4)
	for _, required := range []string{cols.City, cols.ServiceDate, cols.Service, cols.Amount} {
		pos, ok := index[required]
		if !ok {
			return nil, &LoadError{Err: ErrMissingColumn, Source: source, Column: required}
		}
		positions[required] = pos
	}

	records := make([]domain.Transaction, 0, len(table.Rows))
	for i, row := range table.Rows {
		rowNum := i + 1
		if len(row) != len(table.Columns) {
			return nil, &LoadError{
				Err:     ErrMalformedRow,
				Source:  source,
				Row:     rowNum,
				Details: fmt.Sprintf("expected %d fields, got %d", len(table.Columns), len(row)),
			}
		}

		serviceDate, err := parseServiceDate(row[positions[cols.ServiceDate]], l.opts.DateLayouts)
		if err != nil {
			return nil, &LoadError{Err: ErrMalformedRow, Source: source, Column: cols.ServiceDate, Row: rowNum, Details: err.Error()}
		}

		amount, err := parseAmount(row[positions[cols.Amount]])
		if err != nil {
			return nil, &LoadError{Err: ErrMalformedRow, Source: source, Column: cols.Amount, Row: rowNum, Details: err.Error()}
		}

		records = append(records, domain.Transaction{
			City:        row[positions[cols.City]],
			ServiceDate: serviceDate,
			Service:     row[positions[cols.Service]],
			Amount:      amount,
			Fields:      append([]string(nil), row...),
		})
	}

	return records, nil
}
