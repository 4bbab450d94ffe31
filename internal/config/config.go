package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Redis       Redis       `mapstructure:",squash"`
	Upstream    Upstream    `mapstructure:",squash"`
	Sync        Sync        `mapstructure:",squash"`
	ReportCache ReportCache `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

// Upstream agrupa a configuração do cliente da fonte paginada
type Upstream struct {
	BaseURL           string        `mapstructure:"upstream_base_url"`
	Timeout           time.Duration `mapstructure:"upstream_timeout"`
	MaxAttempts       int           `mapstructure:"upstream_max_attempts"`
	RetryDelay        time.Duration `mapstructure:"upstream_retry_delay"`
	RequestsPerSecond float64       `mapstructure:"upstream_requests_per_second"`
}

type Sync struct {
	Concurrency         int      `mapstructure:"sync_concurrency"`
	InsightsConcurrency int      `mapstructure:"sync_insights_concurrency"`
	InsightsChunkSize   int      `mapstructure:"sync_insights_chunk_size"`
	InsightsLookback    int      `mapstructure:"sync_insights_lookback_days"`
	InsightsAdIDs       []string `mapstructure:"sync_insights_ad_ids"`
	CronSchedule        string   `mapstructure:"sync_cron"`
	ScheduleEnabled     bool     `mapstructure:"sync_schedule_enabled"`
	OnStartup           bool     `mapstructure:"sync_on_startup"`
}

type ReportCache struct {
	TTL time.Duration `mapstructure:"report_cache_ttl"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ads_dashboard?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	// Sem REDIS_ADDR o cache de relatórios fica em memória
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("UPSTREAM_BASE_URL", "http://localhost:3001/api")
	viper.SetDefault("UPSTREAM_TIMEOUT", "30s")
	viper.SetDefault("UPSTREAM_MAX_ATTEMPTS", 5)
	viper.SetDefault("UPSTREAM_RETRY_DELAY", "1s")
	viper.SetDefault("UPSTREAM_REQUESTS_PER_SECOND", 0) // 0 = sem limite

	viper.SetDefault("SYNC_CONCURRENCY", 20)
	viper.SetDefault("SYNC_INSIGHTS_CONCURRENCY", 30)
	viper.SetDefault("SYNC_INSIGHTS_CHUNK_SIZE", 5000)
	viper.SetDefault("SYNC_INSIGHTS_LOOKBACK_DAYS", 0) // 0 = todo o histórico
	viper.SetDefault("SYNC_INSIGHTS_AD_IDS", "")       // vazio = insights de todos os anúncios
	viper.SetDefault("SYNC_CRON", "0 2 * * *")         // Todos os dias às 2h da manhã
	viper.SetDefault("SYNC_SCHEDULE_ENABLED", false)
	viper.SetDefault("SYNC_ON_STARTUP", false)

	viper.SetDefault("REPORT_CACHE_TTL", "60s")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate garante que os limites de concorrência e retry são utilizáveis
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL é obrigatório")
	}
	if c.Upstream.MaxAttempts < 1 {
		return fmt.Errorf("UPSTREAM_MAX_ATTEMPTS deve ser >= 1, recebido %d", c.Upstream.MaxAttempts)
	}
	if c.Sync.Concurrency < 1 || c.Sync.InsightsConcurrency < 1 {
		return fmt.Errorf("SYNC_CONCURRENCY e SYNC_INSIGHTS_CONCURRENCY devem ser >= 1")
	}
	if c.Sync.InsightsChunkSize < 1 {
		return fmt.Errorf("SYNC_INSIGHTS_CHUNK_SIZE deve ser >= 1, recebido %d", c.Sync.InsightsChunkSize)
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
