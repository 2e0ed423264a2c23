package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/detailing-dashboard/infrastructure/database/postgres"
	"github.com/vfg2006/detailing-dashboard/internal/domain"
)

// TransactionTable reads the dataset from a Postgres table. Every column of
// the table is passed through; the loader picks out the ones it needs.
type TransactionTable struct {
	conn  postgres.Queryer
	table string
}

func NewTransactionTable(conn postgres.Queryer, table string) *TransactionTable {
	return &TransactionTable{
		conn:  conn,
		table: table,
	}
}

func (r *TransactionTable) Name() string {
	return "postgres:" + r.table
}

func (r *TransactionTable) Read(ctx context.Context) (*domain.Table, error) {
	sqlQuery, args, err := r.readQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build read query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns of %s: %w", r.table, err)
	}

	table := &domain.Table{Columns: columns, Rows: make([][]string, 0)}

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row %d: %w", r.table, len(table.Rows)+1, err)
		}

		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = cellString(v)
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", r.table, err)
	}

	return table, nil
}

// Fingerprint hashes the whole table content so any insert, update or
// delete changes it.
func (r *TransactionTable) Fingerprint(ctx context.Context) (string, error) {
	sqlQuery, args, err := r.fingerprintQuery().ToSql()
	if err != nil {
		return "", fmt.Errorf("build fingerprint query: %w", err)
	}

	var count int64
	var digest string
	if err := r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&count, &digest); err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", r.table, err)
	}

	return strconv.FormatInt(count, 10) + ":" + digest, nil
}

func (r *TransactionTable) readQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("*").
		From(pq.QuoteIdentifier(r.table)).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *TransactionTable) fingerprintQuery() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"COUNT(*)",
			"MD5(COALESCE(STRING_AGG(t::text, '|' ORDER BY t::text), ''))",
		).
		From(pq.QuoteIdentifier(r.table) + " t").
		PlaceholderFormat(squirrel.Dollar)
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.DateTime)
	default:
		return fmt.Sprint(val)
	}
}
