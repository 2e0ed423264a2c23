package csvfile

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/vfg2006/detailing-dashboard/internal/domain"
)

// Source reads the dataset from a CSV file whose first row is the header.
type Source struct {
	path string
}

func NewSource(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Name() string {
	return "csv:" + s.path
}

func (s *Source) Read(ctx context.Context) (*domain.Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer f.Close()

	r := csv.NewReader(f)
	// row width is checked by the loader so it can report the row number
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return &domain.Table{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read header of %s", s.path)
	}

	table := &domain.Table{Columns: header, Rows: make([][]string, 0)}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", s.path)
		}

		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// Fingerprint returns the SHA-256 of the file content.
func (s *Source) Fingerprint(_ context.Context) (string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return "", errors.Wrap(err, "open dataset")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrapf(err, "hash %s", s.path)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
