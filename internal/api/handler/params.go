package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/vfg2006/detailing-dashboard/internal/domain"
	"github.com/vfg2006/detailing-dashboard/pkg/apiErrors"
	"github.com/vfg2006/detailing-dashboard/pkg/log"
	"github.com/vfg2006/detailing-dashboard/pkg/utils"
)

// queryError reports a query parameter that could not be parsed
type queryError struct {
	Param string `json:"param"`
	Value string `json:"value"`
	err   error
}

func (e *queryError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Param, e.Value, e.err)
}

func (e *queryError) Unwrap() error {
	return e.err
}

// parseSelection reads city, start_date and end_date. Blank values are
// treated as absent; a city is otherwise kept byte for byte.
func parseSelection(r *http.Request) (domain.Selection, error) {
	query := r.URL.Query()
	sel := domain.Selection{}

	if city := query.Get("city"); strings.TrimSpace(city) != "" {
		sel.City = &city
	}

	startDate, err := utils.ParseDate(query.Get("start_date"))
	if err != nil {
		return sel, &queryError{Param: "start_date", Value: query.Get("start_date"), err: err}
	}
	sel.StartDate = startDate

	endDate, err := utils.ParseDate(query.Get("end_date"))
	if err != nil {
		return sel, &queryError{Param: "end_date", Value: query.Get("end_date"), err: err}
	}
	sel.EndDate = endDate

	return sel, nil
}

// parsePage reads page and page_size, falling back to 1 and defaultSize
func parsePage(r *http.Request, defaultSize int) (int, int, error) {
	query := r.URL.Query()

	page, err := positiveInt(query.Get("page"), 1)
	if err != nil {
		return 0, 0, &queryError{Param: "page", Value: query.Get("page"), err: err}
	}

	size, err := positiveInt(query.Get("page_size"), defaultSize)
	if err != nil {
		return 0, 0, &queryError{Param: "page_size", Value: query.Get("page_size"), err: err}
	}

	return page, size, nil
}

func positiveInt(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New("must be at least 1")
	}

	return n, nil
}

func writeQueryError(w http.ResponseWriter, logger log.Logger, err error) {
	apiErr := apiErrors.FromError(err, apiErrors.ErrInvalidFormat)

	logger.WithField("error", apiErr.Message).Warn("rejecting request with invalid query")

	var details any
	var qe *queryError
	if errors.As(err, &qe) {
		details = qe
	}

	apiErrors.WriteError(w, apiErr.Code, apiErr.Message, details)
}
