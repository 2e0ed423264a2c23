package loading

import (
	"errors"
	"fmt"
)

var (
	ErrSourceUnreadable = errors.New("dataset source is unreadable")
	ErrMissingColumn    = errors.New("required column is missing")
	ErrMalformedRow     = errors.New("malformed row")
	ErrDuplicateColumn  = errors.New("column name is repeated")
)

// LoadError describes why a dataset could not be loaded
type LoadError struct {
	Err     error  // one of the sentinel errors above
	Source  string // source name
	Column  string // offending column, when known
	Row     int    // 1-based data row, 0 when not row specific
	Details string
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("load %s: %s", e.Source, e.Err.Error())
	if e.Column != "" {
		msg += fmt.Sprintf(" (column %q)", e.Column)
	}
	if e.Row > 0 {
		msg += fmt.Sprintf(" at row %d", e.Row)
	}
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is (or wraps) a *LoadError
func IsLoadError(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr)
}
