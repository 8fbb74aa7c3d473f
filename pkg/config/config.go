package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Notifier     NotifierConfig
	Detector     DetectorConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOCKSENTRY_APP_ENV" required:"true"`
	Port         string `envconfig:"STOCKSENTRY_APP_PORT" default:"8090"`
	LogLevel     string `envconfig:"STOCKSENTRY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKSENTRY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"STOCKSENTRY_SERVICE_KIND" default:"notifier-worker"`
}

type DBConfig struct {
	DSN    string `envconfig:"STOCKSENTRY_DB_DSN"`
	Driver string `envconfig:"STOCKSENTRY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOCKSENTRY_DB_HOST"`
	LegacyPort     int    `envconfig:"STOCKSENTRY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOCKSENTRY_DB_USER"`
	LegacyPassword string `envconfig:"STOCKSENTRY_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOCKSENTRY_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOCKSENTRY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOCKSENTRY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOCKSENTRY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKSENTRY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKSENTRY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOCKSENTRY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOCKSENTRY_REDIS_ADDR"`
	Password     string        `envconfig:"STOCKSENTRY_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOCKSENTRY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOCKSENTRY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOCKSENTRY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOCKSENTRY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOCKSENTRY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOCKSENTRY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOCKSENTRY_AUTO_MIGRATE" default:"false"`
}

// NotifierConfig tunes the notification dispatch worker.
type NotifierConfig struct {
	PollInterval  time.Duration `envconfig:"STOCKSENTRY_NOTIFIER_POLL_INTERVAL" default:"15m"`
	DispatchBatch int           `envconfig:"STOCKSENTRY_NOTIFIER_DISPATCH_BATCH" default:"100"`
	Channel       string        `envconfig:"STOCKSENTRY_NOTIFIER_CHANNEL" default:"email"`
}

// DetectorConfig bounds the quantities accepted from collaborator events.
type DetectorConfig struct {
	MaxLineQuantity int `envconfig:"STOCKSENTRY_MAX_LINE_QUANTITY" default:"1000000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
