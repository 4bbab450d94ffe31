package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/cache"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/database/postgres"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/integrator/upstream"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/integrator/upstream/upstreamclient"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/migration"
	"github.com/yardenfarag/Full-Stack-Assignment/infrastructure/repository"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/api"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/config"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/scheduler"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/catalog"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/reporting"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/syncing"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/metrics"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if err := migration.Migrate(ctx, pgConn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar o schema do banco")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	reportCache, closeCache := newReportCache(ctx, cfg)
	defer closeCache()

	upstreamClient, err := upstreamclient.NewClient(cfg.Upstream, appMetrics)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar o cliente do upstream")
	}
	integrator := upstream.New(cfg.Sync, upstreamClient)

	campaignRepo := repository.NewCampaignRepository(pgConn)
	creativeRepo := repository.NewCreativeRepository(pgConn)
	adRepo := repository.NewAdRepository(pgConn)
	insightRepo := repository.NewInsightRepository(pgConn)

	syncService := syncing.NewService(
		cfg.Sync,
		integrator,
		syncing.Repositories{
			Store:     repository.NewStore(pgConn),
			Campaigns: campaignRepo,
			Creatives: creativeRepo,
			Ads:       adRepo,
			Insights:  insightRepo,
		},
		reportCache,
		syncing.NewProgressTracker(),
		appMetrics,
	)

	reportService := reporting.NewService(insightRepo, reportCache, appMetrics)
	catalogService := catalog.NewService(campaignRepo, creativeRepo, adRepo)

	syncScheduler := scheduler.NewSyncScheduler(cfg.Sync, syncService)
	if err := syncScheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização")
	}

	if cfg.Sync.OnStartup {
		if runID, err := syncService.StartSync(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao iniciar a sincronização inicial")
		} else {
			logrus.WithField("run_id", runID).Info("Sincronização inicial disparada")
		}
	}

	server, err := api.New(cfg, api.Services{
		Reporter:  reportService,
		Syncer:    syncService,
		Catalog:   catalogService,
		Scheduler: syncScheduler,
		Metrics:   appMetrics,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// newReportCache usa Redis quando REDIS_ADDR está definido; sem ele, ou se o Redis
// não responder, o cache fica em memória no processo
func newReportCache(ctx context.Context, cfg *config.Config) (cache.ReportCache, func()) {
	if cfg.Redis.Addr == "" {
		logrus.Info("Cache de relatórios em memória")
		return cache.NewMemoryCache(cfg.ReportCache.TTL), func() {}
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg.Redis, cfg.ReportCache.TTL)
	if err != nil {
		logrus.WithError(err).Warn("Redis indisponível, usando cache de relatórios em memória")
		return cache.NewMemoryCache(cfg.ReportCache.TTL), func() {}
	}

	logrus.WithField("addr", cfg.Redis.Addr).Info("Cache de relatórios no Redis")
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão com o Redis")
		}
	}
}
