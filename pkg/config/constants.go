package config

// EnvPrefix is intentionally empty: every field names its variable in full
// via the envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "STOCKSENTRY_APP_ENV"
	EnvPort     = "STOCKSENTRY_APP_PORT"
	EnvDBDSN    = "STOCKSENTRY_DB_DSN"
	EnvDBHost   = "STOCKSENTRY_DB_HOST"
	EnvDBUser   = "STOCKSENTRY_DB_USER"
	EnvDBName   = "STOCKSENTRY_DB_NAME"
	EnvRedisURL = "STOCKSENTRY_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
