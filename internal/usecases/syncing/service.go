package syncing

//go:generate mockgen -source=$GOFILE -destination=mocks/$GOFILE -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/cache"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/integrator/upstream"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/integrator/upstream/upstreamclient"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/repository"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/config"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/domain"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/metrics"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// A cada quantos lotes de insights gravados o progresso é publicado
const insightProgressEvery = 3

type Syncer interface {
	// StartSync inicia uma sincronização em segundo plano e devolve o id da execução
	StartSync(ctx context.Context) (string, error)
	GetProgress() domain.SyncProgress
	Subscribe(fn Subscriber) (unsubscribe func())
}

// Repositories agrupa o armazenamento escrito pela sincronização
type Repositories struct {
	Store     repository.Store
	Campaigns repository.CampaignRepository
	Creatives repository.CreativeRepository
	Ads       repository.AdRepository
	Insights  repository.InsightRepository
}

type Service struct {
	cfg        config.Sync
	integrator upstream.Integrator
	repos      Repositories
	cache      cache.ReportCache
	tracker    *ProgressTracker
	metrics    *metrics.Metrics

	now      func() time.Time
	newRunID func() (string, error)
}

func NewService(
	cfg config.Sync,
	integrator upstream.Integrator,
	repos Repositories,
	reportCache cache.ReportCache,
	tracker *ProgressTracker,
	m *metrics.Metrics,
) *Service {
	return &Service{
		cfg:        cfg,
		integrator: integrator,
		repos:      repos,
		cache:      reportCache,
		tracker:    tracker,
		metrics:    m,
		now:        time.Now,
		newRunID:   utils.GenerateRunID,
	}
}

func (s *Service) GetProgress() domain.SyncProgress {
	return s.tracker.Snapshot()
}

func (s *Service) Subscribe(fn Subscriber) func() {
	return s.tracker.Subscribe(fn)
}

// StartSync não espera a execução terminar; o contexto do chamador só fornece valores,
// seu cancelamento não interrompe a sincronização
func (s *Service) StartSync(ctx context.Context) (string, error) {
	runID, err := s.begin()
	if err != nil {
		return "", err
	}

	go func() {
		_ = s.run(context.WithoutCancel(ctx), runID)
	}()

	return runID, nil
}

// Sync executa uma sincronização completa e só retorna ao final
func (s *Service) Sync(ctx context.Context) error {
	runID, err := s.begin()
	if err != nil {
		return err
	}

	return s.run(ctx, runID)
}

func (s *Service) begin() (string, error) {
	runID, err := s.newRunID()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerateRunID, err)
	}

	if err := s.tracker.Begin(runID, s.now()); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Service) run(ctx context.Context, runID string) error {
	startTime := s.now()
	logger := logrus.WithField("run_id", runID)
	logger.Info("sync: run started")

	if err := s.execute(ctx, logger); err != nil {
		s.tracker.Fail(err.Error(), s.now())
		s.metrics.RecordSyncRun(string(domain.SyncStatusError), s.now().Sub(startTime))
		logger.WithError(err).Error("sync: run failed")
		return err
	}

	// Invalidado antes de publicar completed para que o cliente já leia dados novos
	if err := s.cache.InvalidateAll(ctx); err != nil {
		logger.WithError(err).Warn("sync: failed to invalidate report cache")
	}

	s.tracker.Complete(s.now())
	elapsed := s.now().Sub(startTime)
	s.metrics.RecordSyncRun(string(domain.SyncStatusCompleted), elapsed)

	progress := s.tracker.Snapshot()
	logger.WithFields(logrus.Fields{
		"campaigns":   progress.Campaigns.Stored,
		"creatives":   progress.Creatives.Stored,
		"ads":         progress.Ads.Stored,
		"insights":    progress.Insights.Stored,
		"duration_ms": elapsed.Milliseconds(),
	}).Info("sync: run completed")

	return nil
}

func (s *Service) execute(ctx context.Context, logger *logrus.Entry) error {
	if err := s.repos.Store.TruncateAll(ctx); err != nil {
		return fmt.Errorf("erro ao limpar dados anteriores: %w", err)
	}
	logger.Debug("sync: previous data truncated")

	adCampaigns := make(map[string]string)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := syncEntity(gctx, s, domain.EntityCampaigns,
			s.integrator.FetchCampaigns,
			func(c domain.Campaign) string { return c.ID },
			s.repos.Campaigns.BulkInsert,
		)
		return err
	})
	g.Go(func() error {
		_, err := syncEntity(gctx, s, domain.EntityCreatives,
			s.integrator.FetchCreatives,
			func(c domain.Creative) string { return c.ID },
			s.repos.Creatives.BulkInsert,
		)
		return err
	})
	g.Go(func() error {
		ads, err := syncEntity(gctx, s, domain.EntityAds,
			s.integrator.FetchAds,
			func(a domain.Ad) string { return a.ID },
			s.repos.Ads.BulkInsert,
		)
		for _, ad := range ads {
			adCampaigns[ad.ID] = ad.CampaignID
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return s.syncInsights(ctx, logger, adCampaigns)
}

// syncEntity busca uma coleção inteira, descarta ids repetidos e grava o resultado
func syncEntity[T any](
	ctx context.Context,
	s *Service,
	entity domain.EntityType,
	fetch func(context.Context, upstreamclient.ProgressFunc) ([]T, error),
	id func(T) string,
	insert func(context.Context, []T) (int, error),
) ([]T, error) {
	records, err := fetch(ctx, s.progressFunc(entity))
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar %s: %w", entity, err)
	}

	unique := dedupe(records, id)
	stored, err := insert(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("erro ao gravar %s: %w", entity, err)
	}

	s.tracker.AddStored(entity, stored)
	s.metrics.RecordStored(string(entity), stored)

	logrus.WithFields(logrus.Fields{
		"entity":     entity,
		"fetched":    len(records),
		"duplicates": len(records) - len(unique),
		"stored":     stored,
	}).Info("sync: entity stored")

	return unique, nil
}

func (s *Service) syncInsights(ctx context.Context, logger *logrus.Entry, adCampaigns map[string]string) error {
	filter := upstream.InsightFilter{}
	if s.cfg.InsightsLookback > 0 {
		today := s.now().UTC()
		filter.From = domain.NewDate(today.AddDate(0, 0, -s.cfg.InsightsLookback).Date())
		filter.To = domain.NewDate(today.Date())
	}
	for _, adID := range s.cfg.InsightsAdIDs {
		if adID = strings.TrimSpace(adID); adID != "" {
			filter.AdIDs = append(filter.AdIDs, adID)
		}
	}
	if len(filter.AdIDs) > 0 {
		logger.WithField("ads", len(filter.AdIDs)).Info("sync: insights scoped to configured ads")
	}

	records, err := s.integrator.FetchInsights(ctx, filter, s.progressFunc(domain.EntityInsights))
	if err != nil {
		return fmt.Errorf("erro ao buscar %s: %w", domain.EntityInsights, err)
	}

	insights := dedupe(records, func(i domain.Insight) string { return i.ID })

	// campaign_id do insight deve ser sempre a campanha do anúncio
	corrected := 0
	for i := range insights {
		if campaignID, ok := adCampaigns[insights[i].AdID]; ok && campaignID != insights[i].CampaignID {
			insights[i].CampaignID = campaignID
			corrected++
		}
	}
	if corrected > 0 {
		logger.WithField("count", corrected).Warn("sync: insights with campaign different from their ad were corrected")
	}

	chunkSize := max(1, s.cfg.InsightsChunkSize)
	pending := 0
	chunks := (len(insights) + chunkSize - 1) / chunkSize

	for chunk := 0; chunk < chunks; chunk++ {
		start := chunk * chunkSize
		end := min(start+chunkSize, len(insights))

		stored, err := s.repos.Insights.BulkInsert(ctx, insights[start:end])
		if err != nil {
			return fmt.Errorf("erro ao gravar %s (lote %d de %d): %w", domain.EntityInsights, chunk+1, chunks, err)
		}
		pending += stored
		s.metrics.RecordStored(string(domain.EntityInsights), stored)

		if (chunk+1)%insightProgressEvery == 0 || chunk == chunks-1 {
			s.tracker.AddStored(domain.EntityInsights, pending)
			pending = 0
		}
	}

	logger.WithFields(logrus.Fields{
		"entity":     domain.EntityInsights,
		"fetched":    len(records),
		"duplicates": len(records) - len(insights),
		"chunks":     chunks,
	}).Info("sync: entity stored")

	return nil
}

func (s *Service) progressFunc(entity domain.EntityType) upstreamclient.ProgressFunc {
	return func(fetched, total int) {
		s.tracker.SetFetched(entity, fetched, total)
	}
}

// dedupe mantém a primeira ocorrência de cada id, preservando a ordem
func dedupe[T any](records []T, id func(T) string) []T {
	seen := make(map[string]struct{}, len(records))
	unique := make([]T, 0, len(records))

	for _, record := range records {
		key := id(record)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, record)
	}

	return unique
}
