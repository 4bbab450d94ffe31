package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "traffic_reports"

// Metrics agrupa os coletores Prometheus do serviço.
// Todos os métodos aceitam receptor nil, o que permite omitir métricas em testes.
type Metrics struct {
	UpstreamRequests   *prometheus.CounterVec
	UpstreamRetries    *prometheus.CounterVec
	SyncRuns           *prometheus.CounterVec
	SyncDuration       prometheus.Histogram
	SyncRecordsStored  *prometheus.CounterVec
	ReportCacheLookups *prometheus.CounterVec
	ReportBuildLatency *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registra as métricas no registry informado
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		UpstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Total de requisições de página feitas ao upstream",
			},
			[]string{"collection", "status"},
		),
		UpstreamRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_retries_total",
				Help:      "Total de novas tentativas contra o upstream, por motivo",
			},
			[]string{"reason"},
		),
		SyncRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_runs_total",
				Help:      "Execuções de sincronização finalizadas, por status",
			},
			[]string{"status"},
		),
		SyncDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sync_duration_seconds",
				Help:      "Duração das execuções de sincronização",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
			},
		),
		SyncRecordsStored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_records_stored_total",
				Help:      "Registros gravados pela sincronização, por entidade",
			},
			[]string{"entity"},
		),
		ReportCacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_cache_lookups_total",
				Help:      "Consultas ao cache de relatórios, por resultado",
			},
			[]string{"result"},
		),
		ReportBuildLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_build_duration_seconds",
				Help:      "Tempo de montagem de relatórios sem cache",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"grouping"},
		),
		gatherer: reg,
	}
}

func (m *Metrics) RecordUpstreamRequest(collection string, status int) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(collection, strconv.Itoa(status)).Inc()
}

func (m *Metrics) RecordUpstreamRetry(reason string) {
	if m == nil {
		return
	}
	m.UpstreamRetries.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordSyncRun(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SyncRuns.WithLabelValues(status).Inc()
	m.SyncDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) RecordStored(entity string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.SyncRecordsStored.WithLabelValues(entity).Add(float64(count))
}

func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.ReportCacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveReportBuild(grouping string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ReportBuildLatency.WithLabelValues(grouping).Observe(elapsed.Seconds())
}

// Handler expõe o endpoint /metrics
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
