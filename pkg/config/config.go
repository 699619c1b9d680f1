package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Catalog       CatalogConfig
	Cart          CartConfig
	Federated     FederatedConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"SHINEON_APP_ENV" required:"true"`
	Port         string `envconfig:"SHINEON_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SHINEON_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHINEON_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHINEON_DB_DSN"`
	Driver string `envconfig:"SHINEON_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHINEON_DB_HOST"`
	LegacyPort     int    `envconfig:"SHINEON_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHINEON_DB_USER"`
	LegacyPassword string `envconfig:"SHINEON_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHINEON_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHINEON_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHINEON_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHINEON_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHINEON_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHINEON_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHINEON_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SHINEON_REDIS_ADDR"`
	Password     string        `envconfig:"SHINEON_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHINEON_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHINEON_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHINEON_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHINEON_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHINEON_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHINEON_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SHINEON_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SHINEON_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"SHINEON_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"SHINEON_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SHINEON_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHINEON_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHINEON_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHINEON_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHINEON_ARGON_KEY_LEN" default:"32"`
}

// CatalogConfig points at the remote product catalog API.
type CatalogConfig struct {
	BaseURL    string        `envconfig:"SHINEON_CATALOG_BASE_URL" required:"true"`
	Timeout    time.Duration `envconfig:"SHINEON_CATALOG_TIMEOUT" default:"10s"`
	MaxRetries int           `envconfig:"SHINEON_CATALOG_MAX_RETRIES" default:"2"`
}

// CartConfig carries cart pricing knobs. Prices are whole thousand-VND units,
// so the default shipping fee of 30 renders as 30.000 VND.
type CartConfig struct {
	ShippingFee int `envconfig:"SHINEON_CART_SHIPPING_FEE" default:"30"`
}

type FederatedConfig struct {
	ProviderSecret string `envconfig:"SHINEON_FEDERATED_PROVIDER_SECRET"`
	ProviderIssuer string `envconfig:"SHINEON_FEDERATED_PROVIDER_ISSUER" default:"accounts.google.com"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"SHINEON_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"SHINEON_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"SHINEON_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SHINEON_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SHINEON_AUTO_MIGRATE" default:"false"`
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
