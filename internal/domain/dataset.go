package domain

import (
	"sort"
	"time"
)

// Dataset is the immutable set of transactions loaded at startup.
// It exposes no mutation and is safe to share between goroutines.
type Dataset struct {
	source   string
	version  string
	loadedAt time.Time
	columns  []string
	records  []Transaction

	cities   []string
	minDate  time.Time
	maxDate  time.Time
	hasDates bool
}

func NewDataset(source, version string, loadedAt time.Time, columns []string, records []Transaction) *Dataset {
	ds := &Dataset{
		source:   source,
		version:  version,
		loadedAt: loadedAt,
		columns:  append([]string(nil), columns...),
		records:  records,
	}

	seen := make(map[string]struct{})
	for i, r := range records {
		if _, ok := seen[r.City]; !ok {
			seen[r.City] = struct{}{}
			ds.cities = append(ds.cities, r.City)
		}

		if i == 0 || r.ServiceDate.Before(ds.minDate) {
			ds.minDate = r.ServiceDate
		}
		if i == 0 || r.ServiceDate.After(ds.maxDate) {
			ds.maxDate = r.ServiceDate
		}
	}
	ds.hasDates = len(records) > 0
	sort.Strings(ds.cities)

	return ds
}

// Records returns the transactions in source order. The slice is capped so
// appends by callers never write into the dataset; elements must not be modified.
func (d *Dataset) Records() []Transaction {
	return d.records[:len(d.records):len(d.records)]
}

func (d *Dataset) Len() int {
	return len(d.records)
}

// Columns returns a copy of the source column names in order
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// DistinctCities returns the unique cities sorted ascending
func (d *Dataset) DistinctCities() []string {
	return append([]string(nil), d.cities...)
}

// DateBounds returns the earliest and latest service dates. ok is false for
// an empty dataset.
func (d *Dataset) DateBounds() (min, max time.Time, ok bool) {
	return d.minDate, d.maxDate, d.hasDates
}

func (d *Dataset) Source() string {
	return d.source
}

func (d *Dataset) Version() string {
	return d.version
}

func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}
