package dashboarding

import (
	"github.com/vfg2006/detailing-dashboard/internal/domain"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Paginate slices records into one table page keyed by column name.
// Out of range pages are clamped to the nearest valid page.
func Paginate(columns []string, records []domain.Transaction, page, pageSize int) domain.TablePage {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	totalPages := (len(records) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(records))

	rows := make([]map[string]string, 0, end-start)
	for _, r := range records[start:end] {
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(r.Fields) {
				row[col] = r.Fields[i]
			}
		}
		rows = append(rows, row)
	}

	return domain.TablePage{
		Columns:    columns,
		Rows:       rows,
		Page:       page,
		PageSize:   pageSize,
		TotalRows:  len(records),
		TotalPages: totalPages,
	}
}
