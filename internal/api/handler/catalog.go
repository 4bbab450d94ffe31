package handler

import (
	"net/http"

	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/catalog"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/apiErrors"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/log"
)

func ListCampaigns(service catalog.Cataloger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		campaigns, err := service.ListCampaigns(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("catalog: failed to list campaigns")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar campanhas", nil)
			return
		}

		writeJSON(w, http.StatusOK, campaigns)
	})
}

func ListCreatives(service catalog.Cataloger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creatives, err := service.ListCreatives(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("catalog: failed to list creatives")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar criativos", nil)
			return
		}

		writeJSON(w, http.StatusOK, creatives)
	})
}

// ListAds aceita ?campaignId= para filtrar pela campanha
func ListAds(service catalog.Cataloger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		campaignID := r.URL.Query().Get("campaignId")

		ads, err := service.ListAds(r.Context(), campaignID)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"campaign_id": campaignID,
				"error":       err.Error(),
			}).Error("catalog: failed to list ads")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar anúncios", nil)
			return
		}

		writeJSON(w, http.StatusOK, ads)
	})
}
