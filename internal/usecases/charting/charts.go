package charting

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/detailing-dashboard/internal/domain"
	"github.com/vfg2006/detailing-dashboard/pkg/utils"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoChartData is returned when a selection leaves nothing to plot
var ErrNoChartData = errors.New("no data to chart")

const (
	DefaultWidth  = 640
	DefaultHeight = 400
)

type Size struct {
	Width  int
	Height int
}

func (s Size) orDefault() Size {
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	return s
}

// ServiceRevenuePie writes an SVG pie of revenue share per service.
// Services with no positive revenue are left out of the pie.
func ServiceRevenuePie(w io.Writer, items []domain.ServiceRevenue, size Size) error {
	size = size.orDefault()

	total := decimal.Zero
	for _, item := range items {
		if item.Amount.IsPositive() {
			total = total.Add(item.Amount)
		}
	}
	if total.IsZero() {
		return ErrNoChartData
	}

	values := make([]chart.Value, 0, len(items))
	for _, item := range items {
		if !item.Amount.IsPositive() {
			continue
		}
		share := item.Amount.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		values = append(values, chart.Value{
			Value: item.Amount.InexactFloat64(),
			Label: fmt.Sprintf("%s (%.2f%%)", item.Service, utils.RoundWithTwoDecimalPlace(share)),
		})
	}

	pie := chart.PieChart{
		Title:  "Service-wise Revenue Distribution",
		Width:  size.Width,
		Height: size.Height,
		Values: values,
	}

	return pie.Render(chart.SVG, w)
}

// DailyRevenueLine writes an SVG line of revenue per day in date order.
func DailyRevenueLine(w io.Writer, items []domain.DailyRevenue, size Size) error {
	size = size.orDefault()

	if len(items) == 0 {
		return ErrNoChartData
	}

	xs := make([]time.Time, 0, len(items)+1)
	ys := make([]float64, 0, len(items)+1)
	for _, item := range items {
		xs = append(xs, item.Date)
		ys = append(ys, utils.Money(item.Amount))
	}

	// a series needs two points to draw a segment
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(time.Second))
		ys = append(ys, ys[0])
	}

	minY, maxY := 0.0, 0.0
	for _, y := range ys {
		minY = min(minY, y)
		maxY = max(maxY, y)
	}
	if maxY-minY < 1 {
		maxY = minY + 1
	}

	graph := chart.Chart{
		Title:  "Daily Revenue Trend",
		Width:  size.Width,
		Height: size.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat(time.DateOnly),
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(xs[0].Add(-12 * time.Hour)),
				Max: chart.TimeToFloat64(xs[len(xs)-1].Add(12 * time.Hour)),
			},
		},
		YAxis: chart.YAxis{
			Name: "Revenue",
			Range: &chart.ContinuousRange{
				Min: minY,
				Max: maxY * 1.1,
			},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Revenue",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("1f77b4"),
					StrokeWidth: 2,
					DotColor:    drawing.ColorFromHex("1f77b4"),
					DotWidth:    3,
				},
			},
		},
	}

	return graph.Render(chart.SVG, w)
}
