package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/detailing-dashboard/internal/scheduler"
	"github.com/vfg2006/detailing-dashboard/pkg/apiErrors"
	"github.com/vfg2006/detailing-dashboard/pkg/log"
	"github.com/vfg2006/detailing-dashboard/pkg/utils"
)

const (
	CronJobTypeSourceWatch = "source-watch"
	CronJobTypeAll         = "all"
)

// CronJobServices holds the background jobs that can be run on demand
type CronJobServices struct {
	SourceWatchService *scheduler.SourceWatchService
}

func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "cron job type is required", nil)
			return
		}

		switch cronType {
		case CronJobTypeSourceWatch, CronJobTypeAll:
			if services.SourceWatchService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "source watch is not available", nil)
				return
			}
			services.SourceWatchService.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid cron job type, accepted values: source-watch, all", nil)
			return
		}

		logger.WithField("type", cronType).Info("cron: job triggered manually")

		response := map[string]any{
			"message": "cron job started",
			"type":    cronType,
		}
		if err := utils.WriteJSON(w, http.StatusAccepted, response); err != nil {
			logger.WithError(err).Error("cron: failed to encode response")
		}
	})
}

func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.SourceWatchService != nil {
			status[CronJobTypeSourceWatch] = services.SourceWatchService.GetStatus()
		}

		if err := utils.WriteJSON(w, http.StatusOK, status); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("cron: failed to encode status")
		}
	})
}
