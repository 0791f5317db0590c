package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/angelmondragon/backoffice/pkg/enums"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	DB       DBConfig
	Redis    RedisConfig
	Password PasswordConfig
	Checkout CheckoutConfig
	Feedback FeedbackConfig
	Metrics  MetricsConfig
	Admin    AdminConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	raw := strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if raw == "" {
		raw = string(enums.StorageBackendFile)
	}
	backend, err := enums.ParseStorageBackend(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", EnvStorageBackend, err)
	}
	c.Storage.Backend = string(backend)

	switch backend {
	case enums.StorageBackendSQL:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvStorageBackend, backend)
		}
	case enums.StorageBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required when %s=%s", EnvRedisURL, EnvRedisAddr, EnvStorageBackend, backend)
		}
	}

	if _, err := enums.ParsePasswordHasher(strings.ToLower(c.Password.Hasher)); err != nil {
		return fmt.Errorf("%s: %w", EnvPasswordHasher, err)
	}
	if c.Feedback.MaxLength <= 0 {
		return fmt.Errorf("%s must be positive", EnvFeedbackMaxLen)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"BACKOFFICE_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"BACKOFFICE_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"BACKOFFICE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects where each store snapshots its state.
type StorageConfig struct {
	Backend      string `envconfig:"BACKOFFICE_STORAGE_BACKEND" default:"file"`
	DataDir      string `envconfig:"BACKOFFICE_STORAGE_DATA_DIR" default:"data"`
	CatalogFile  string `envconfig:"BACKOFFICE_CATALOG_FILE" default:"defaultproducts.json"`
	OrderJournal string `envconfig:"BACKOFFICE_ORDER_JOURNAL" default:"Order.txt"`
	ReviewFile   string `envconfig:"BACKOFFICE_REVIEW_FILE" default:"Feedback.txt"`
	AutoMigrate  bool   `envconfig:"BACKOFFICE_AUTO_MIGRATE" default:"true"`
}

// Path joins name onto the data directory unless name is already absolute.
func (s StorageConfig) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.DataDir, name)
}

type DBConfig struct {
	DSN    string `envconfig:"BACKOFFICE_DB_DSN"`
	Driver string `envconfig:"BACKOFFICE_DB_DRIVER" default:"sqlite"`

	MaxOpenConns    int           `envconfig:"BACKOFFICE_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"BACKOFFICE_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"BACKOFFICE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BACKOFFICE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BACKOFFICE_REDIS_URL"`
	Address      string        `envconfig:"BACKOFFICE_REDIS_ADDR"`
	Password     string        `envconfig:"BACKOFFICE_REDIS_PASSWORD"`
	DB           int           `envconfig:"BACKOFFICE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BACKOFFICE_REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"BACKOFFICE_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"BACKOFFICE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BACKOFFICE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BACKOFFICE_REDIS_WRITE_TIMEOUT" default:"5s"`
	KeyPrefix    string        `envconfig:"BACKOFFICE_REDIS_KEY_PREFIX" default:"bo"`
}

type PasswordConfig struct {
	Hasher           string `envconfig:"BACKOFFICE_PASSWORD_HASHER" default:"sha256"`
	ArgonMemoryKB    int    `envconfig:"BACKOFFICE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int    `envconfig:"BACKOFFICE_ARGON_TIME" default:"3"`
	ArgonParallelism int    `envconfig:"BACKOFFICE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int    `envconfig:"BACKOFFICE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int    `envconfig:"BACKOFFICE_ARGON_KEY_LEN" default:"32"`
}

type CheckoutConfig struct {
	CurrencySymbol string `envconfig:"BACKOFFICE_CURRENCY_SYMBOL" default:"RM"`
}

type FeedbackConfig struct {
	MaxLength int `envconfig:"BACKOFFICE_FEEDBACK_MAX_LENGTH" default:"200"`
}

// MetricsConfig points at a node_exporter textfile collector file. When set,
// checkout metrics are written there as the process exits.
type MetricsConfig struct {
	Textfile string `envconfig:"BACKOFFICE_METRICS_TEXTFILE"`
}

// AdminConfig seeds the first credential so an operator can log in.
type AdminConfig struct {
	Username string `envconfig:"BACKOFFICE_ADMIN_USERNAME"`
	Password string `envconfig:"BACKOFFICE_ADMIN_PASSWORD"`
}
