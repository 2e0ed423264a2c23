package handler

import (
	"net/http"

	"github.com/vfg2006/detailing-dashboard/internal/domain"
	"github.com/vfg2006/detailing-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/detailing-dashboard/pkg/log"
	"github.com/vfg2006/detailing-dashboard/pkg/utils"
)

func GetFilters(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if err := utils.WriteJSON(w, http.StatusOK, service.Options()); err != nil {
			logger.WithError(err).Error("filters: failed to encode response")
		}
	})
}

func GetDashboard(service dashboarding.Dashboarder, defaultPageSize int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		sel, err := parseSelection(r)
		if err != nil {
			writeQueryError(w, logger, err)
			return
		}

		page, pageSize, err := parsePage(r, defaultPageSize)
		if err != nil {
			writeQueryError(w, logger, err)
			return
		}

		result := service.Compute(r.Context(), sel)
		table := dashboarding.Paginate(service.Columns(), result.Records, page, pageSize)

		if err := utils.WriteJSON(w, http.StatusOK, domain.NewDashboardResponse(result, table)); err != nil {
			logger.WithError(err).Error("dashboard: failed to encode response")
		}
	})
}

func GetTransactions(service dashboarding.Dashboarder, defaultPageSize int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		sel, err := parseSelection(r)
		if err != nil {
			writeQueryError(w, logger, err)
			return
		}

		page, pageSize, err := parsePage(r, defaultPageSize)
		if err != nil {
			writeQueryError(w, logger, err)
			return
		}

		result := service.Compute(r.Context(), sel)
		table := dashboarding.Paginate(service.Columns(), result.Records, page, pageSize)

		if err := utils.WriteJSON(w, http.StatusOK, table); err != nil {
			logger.WithError(err).Error("transactions: failed to encode response")
		}
	})
}
