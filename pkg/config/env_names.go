package config

// EnvPrefix is passed to envconfig; each field also names its variable
// explicitly so the prefix mainly guards against typoed tags.
const EnvPrefix = "SHINEON"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "SHINEON_APP_ENV"
	EnvPort       = "SHINEON_APP_PORT"
	EnvDBDSN      = "SHINEON_DB_DSN"
	EnvDBHost     = "SHINEON_DB_HOST"
	EnvDBUser     = "SHINEON_DB_USER"
	EnvDBName     = "SHINEON_DB_NAME"
	EnvRedisURL   = "SHINEON_REDIS_URL"
	EnvJWTSecret  = "SHINEON_JWT_SECRET"
	EnvJWTIssuer  = "SHINEON_JWT_ISSUER"
	EnvJWTExpMins = "SHINEON_JWT_EXPIRATION_MINUTES"

	EnvCatalogBaseURL = "SHINEON_CATALOG_BASE_URL"
	EnvShippingFee    = "SHINEON_CART_SHIPPING_FEE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
