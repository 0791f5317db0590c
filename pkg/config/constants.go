package config

// EnvPrefix is handed to envconfig; every variable below carries it already.
const EnvPrefix = "BACKOFFICE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv          = "BACKOFFICE_APP_ENV"
	EnvLogLevel        = "BACKOFFICE_LOG_LEVEL"
	EnvStorageBackend  = "BACKOFFICE_STORAGE_BACKEND"
	EnvStorageDataDir  = "BACKOFFICE_STORAGE_DATA_DIR"
	EnvDBDSN           = "BACKOFFICE_DB_DSN"
	EnvDBDriver        = "BACKOFFICE_DB_DRIVER"
	EnvRedisURL        = "BACKOFFICE_REDIS_URL"
	EnvRedisAddr       = "BACKOFFICE_REDIS_ADDR"
	EnvPasswordHasher  = "BACKOFFICE_PASSWORD_HASHER"
	EnvCurrencySymbol  = "BACKOFFICE_CURRENCY_SYMBOL"
	EnvAdminUsername   = "BACKOFFICE_ADMIN_USERNAME"
	EnvAdminPassword   = "BACKOFFICE_ADMIN_PASSWORD"
	EnvFeedbackMaxLen  = "BACKOFFICE_FEEDBACK_MAX_LENGTH"
	EnvAutoMigrate     = "BACKOFFICE_AUTO_MIGRATE"
	EnvCatalogFileName = "BACKOFFICE_CATALOG_FILE"
	EnvMetricsTextfile = "BACKOFFICE_METRICS_TEXTFILE"
)
