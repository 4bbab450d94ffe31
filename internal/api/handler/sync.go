package handler

import (
	"errors"
	"net/http"

	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/scheduler"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/syncing"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/apiErrors"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/log"
)

type ScheduleStatusProvider interface {
	GetStatus() scheduler.Status
}

type triggerSyncResponse struct {
	Message string `json:"message"`
	RunID   string `json:"runId"`
}

type syncStatusResponse struct {
	Progress domain.SyncProgress `json:"progress"`
	Schedule *scheduler.Status   `json:"schedule,omitempty"`
}

// TriggerSync não espera o fim da sincronização
func TriggerSync(service syncing.Syncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		runID, err := service.StartSync(r.Context())
		if err != nil {
			if errors.Is(err, syncing.ErrSyncInProgress) {
				logger.Info("sync: trigger rejected, sync already running")
				apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Já existe uma sincronização em andamento", nil)
				return
			}

			logger.WithError(err).Error("sync: failed to start")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao iniciar a sincronização", err.Error())
			return
		}

		logger.WithField("run_id", runID).Info("sync: started by request")
		writeJSON(w, http.StatusAccepted, triggerSyncResponse{
			Message: "Sincronização iniciada",
			RunID:   runID,
		})
	})
}

func GetSyncStatus(service syncing.Syncer, schedule ScheduleStatusProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := syncStatusResponse{
			Progress: service.GetProgress(),
		}
		if schedule != nil {
			status := schedule.GetStatus()
			response.Schedule = &status
		}

		writeJSON(w, http.StatusOK, response)
	})
}
