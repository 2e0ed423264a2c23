package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/vfg2006/detailing-dashboard/internal/domain"
	"github.com/vfg2006/detailing-dashboard/internal/usecases/charting"
	"github.com/vfg2006/detailing-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/detailing-dashboard/pkg/apiErrors"
	"github.com/vfg2006/detailing-dashboard/pkg/log"
)

type chartRenderer func(buf *bytes.Buffer, result *domain.PipelineResult) error

func ServiceRevenueChart(service dashboarding.Dashboarder) http.Handler {
	return chartHandler(service, "Service-wise Revenue Distribution", func(buf *bytes.Buffer, result *domain.PipelineResult) error {
		return charting.ServiceRevenuePie(buf, result.RevenueByService, charting.Size{})
	})
}

func DailyRevenueChart(service dashboarding.Dashboarder) http.Handler {
	return chartHandler(service, "Daily Revenue Trend", func(buf *bytes.Buffer, result *domain.PipelineResult) error {
		return charting.DailyRevenueLine(buf, result.DailyRevenue, charting.Size{})
	})
}

func chartHandler(service dashboarding.Dashboarder, title string, render chartRenderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		sel, err := parseSelection(r)
		if err != nil {
			writeQueryError(w, logger, err)
			return
		}

		result := service.Compute(r.Context(), sel)

		var buf bytes.Buffer
		err = render(&buf, result)
		switch {
		case errors.Is(err, charting.ErrNoChartData):
			buf.Reset()
			buf.WriteString(emptyChart(title))
		case err != nil:
			logger.WithError(err).Error("charts: failed to render " + title)
			apiErrors.WriteError(w, apiErrors.ErrRenderFailure, "failed to render chart", nil)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "no-store")
		if _, err := w.Write(buf.Bytes()); err != nil {
			logger.WithError(err).Warn("charts: failed to write response")
		}
	})
}

func emptyChart(title string) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+
		`<rect width="100%%" height="100%%" fill="#ffffff"/>`+
		`<text x="50%%" y="40" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`+
		`<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#888888">No data for this selection</text>`+
		`</svg>`,
		charting.DefaultWidth, charting.DefaultHeight, html.EscapeString(title))
}
