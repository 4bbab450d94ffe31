package reporting

//go:generate mockgen -source=$GOFILE -destination=mocks/$GOFILE -package=mocks

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/cache"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/repository"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Reporter interface {
	// GetPerformance valida o pedido e devolve a página do relatório, usando o cache quando possível
	GetPerformance(ctx context.Context, req domain.PerformanceRequest) (*domain.PerformanceResponse, error)
}

type Service struct {
	insights repository.InsightRepository
	cache    cache.ReportCache
	metrics  *metrics.Metrics

	now func() time.Time
}

func NewService(insights repository.InsightRepository, reportCache cache.ReportCache, m *metrics.Metrics) Reporter {
	return &Service{
		insights: insights,
		cache:    reportCache,
		metrics:  m,
		now:      time.Now,
	}
}

func (s *Service) GetPerformance(ctx context.Context, req domain.PerformanceRequest) (*domain.PerformanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	normalized := req.Normalized()
	key, err := cacheKey(normalized)
	if err != nil {
		return nil, err
	}

	cached, generation, cacheable := s.lookup(ctx, key)
	if cached != nil {
		return cached, nil
	}

	startTime := s.now()
	rows, err := s.insights.QueryPerformanceRows(ctx, normalized.Query())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryRows, err)
	}

	response := BuildReport(rows, normalized)
	s.metrics.ObserveReportBuild(string(normalized.Grouping), s.now().Sub(startTime))

	logrus.WithFields(logrus.Fields{
		"grouping": normalized.Grouping,
		"rows":     len(rows),
		"groups":   response.Meta.TotalRows,
	}).Debug("reporting: report built")

	if cacheable {
		s.store(ctx, key, generation, &response)
	}

	return &response, nil
}

func cacheKey(req domain.PerformanceRequest) (string, error) {
	encoded, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodeCache, err)
	}
	return cache.Fingerprint(encoded), nil
}

// lookup trata falhas do cache como ausência, o relatório é remontado a partir do banco.
// A geração lida acompanha o relatório até o store: se uma sincronização terminar
// enquanto ele é montado, a escrita fica na geração invalidada. Sem geração conhecida
// (cache com erro) o relatório não é gravado.
func (s *Service) lookup(ctx context.Context, key string) (*domain.PerformanceResponse, int64, bool) {
	entry, err := s.cache.Get(ctx, key)
	if err != nil {
		logrus.WithError(err).Warn("reporting: cache lookup failed")
		s.metrics.RecordCacheLookup(false)
		return nil, 0, false
	}

	if entry.Found {
		var response domain.PerformanceResponse
		if err := json.Unmarshal(entry.Value, &response); err == nil {
			s.metrics.RecordCacheLookup(true)
			return &response, entry.Generation, true
		}
		logrus.Warn("reporting: discarding unreadable cache entry")
	}

	s.metrics.RecordCacheLookup(false)
	return nil, entry.Generation, true
}

func (s *Service) store(ctx context.Context, key string, generation int64, response *domain.PerformanceResponse) {
	payload, err := json.Marshal(response)
	if err != nil {
		logrus.WithError(err).Warn("reporting: failed to encode report for cache")
		return
	}

	if err := s.cache.Set(ctx, key, generation, payload); err != nil {
		logrus.WithError(err).Warn("reporting: failed to store report in cache")
	}
}
