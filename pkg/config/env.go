package config

// Fields carry explicit envconfig tags, so the prefix only scopes split_words lookups.
const EnvPrefix = "SKUEXPORT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

const (
	EnvAppEnv            = "SKUEXPORT_APP_ENV"
	EnvPort              = "SKUEXPORT_APP_PORT"
	EnvDBDSN             = "SKUEXPORT_DB_DSN"
	EnvDBHost            = "SKUEXPORT_DB_HOST"
	EnvDBUser            = "SKUEXPORT_DB_USER"
	EnvDBName            = "SKUEXPORT_DB_NAME"
	EnvRedisURL          = "SKUEXPORT_REDIS_URL"
	EnvRedisAddr         = "SKUEXPORT_REDIS_ADDR"
	EnvJWTSecret         = "SKUEXPORT_JWT_SECRET"
	EnvJWTIssuer         = "SKUEXPORT_JWT_ISSUER"
	EnvCacheBackend      = "SKUEXPORT_CACHE_BACKEND"
	EnvStrictFilterValue = "SKUEXPORT_STRICT_FILTER_VALUES"
	EnvUseSQLite         = "SKUEXPORT_USE_SQLITE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
