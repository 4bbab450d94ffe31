package handler

import (
	"github.com/yardenfarag/Full-Stack-Assignment/internal/api/handler/router"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/catalog"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/reporting"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/syncing"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/metrics"
)

func Healthcheck() []router.Route {
	return []router.Route{
		router.Get("/healthcheck", HealthcheckHandler()),
	}
}

func Metrics(m *metrics.Metrics) []router.Route {
	return []router.Route{
		router.Get("/metrics", m.Handler()),
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		router.Get("/api/columns", ListColumns()),
		router.Post("/api/performance", GetPerformance(service)),
	}
}

func Sync(service syncing.Syncer, schedule ScheduleStatusProvider) []router.Route {
	return []router.Route{
		router.Post("/api/sync", TriggerSync(service)),
		router.Get("/api/sync/status", GetSyncStatus(service, schedule)),
		router.Get("/api/sync/progress", StreamSyncProgress(service)),
	}
}

func Catalog(service catalog.Cataloger) []router.Route {
	return []router.Route{
		router.Get("/api/campaigns", ListCampaigns(service)),
		router.Get("/api/creatives", ListCreatives(service)),
		router.Get("/api/ads", ListAds(service)),
	}
}
