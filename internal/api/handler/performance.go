package handler

import (
	"errors"
	"net/http"

	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/reporting"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/apiErrors"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/log"
)

const maxRequestBody = 1 << 20

// ListColumns devolve a descrição estática das colunas, que muda apenas com deploy
func ListColumns() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		writeJSON(w, http.StatusOK, domain.Columns())
	})
}

func GetPerformance(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req domain.PerformanceRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
			logger.WithError(err).Warn("performance: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", err.Error())
			return
		}

		response, err := service.GetPerformance(r.Context(), req)
		if err != nil {
			var validationErr *domain.ValidationError
			if errors.As(err, &validationErr) {
				logger.WithFields(log.Fields{
					"field": validationErr.Field,
					"error": validationErr.Message,
				}).Warn("performance: request rejected")

				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, validationErr.Error(), map[string]string{
					"field": validationErr.Field,
				})
				return
			}

			logger.WithError(err).Error("performance: failed to build report")
			apiErrors.WriteError(w, apiErrors.ErrReportFailed, "Falha ao montar o relatório", err.Error())
			return
		}

		logger.WithFields(log.Fields{
			"grouping":   req.Grouping,
			"total_rows": response.Meta.TotalRows,
			"page":       response.Meta.Page,
		}).Debug("performance: report served")

		writeJSON(w, http.StatusOK, response)
	})
}
