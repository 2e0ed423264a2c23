package loading

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/detailing-dashboard/pkg/utils"
)

var amountReplacer = strings.NewReplacer("$", "", ",", "", " ", "")

// parseAmount accepts plain decimals as well as "$1,250.00"
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := amountReplacer.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}

	return amount, nil
}

// parseServiceDate tries each layout in order and keeps only the calendar day
func parseServiceDate(raw string, layouts []string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return utils.DateOf(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("date %q matches none of the layouts %v", raw, layouts)
}

// normalizeHeader strips a UTF-8 byte order mark and surrounding blanks
func normalizeHeader(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
}
