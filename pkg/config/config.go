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
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Cache        CacheConfig
	Export       ExportConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	if err := cfg.Cache.validate(cfg.Redis); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SKUEXPORT_APP_ENV" required:"true"`
	Port         string `envconfig:"SKUEXPORT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SKUEXPORT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SKUEXPORT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SKUEXPORT_DB_DSN"`
	Driver string `envconfig:"SKUEXPORT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SKUEXPORT_DB_HOST"`
	LegacyPort     int    `envconfig:"SKUEXPORT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SKUEXPORT_DB_USER"`
	LegacyPassword string `envconfig:"SKUEXPORT_DB_PASSWORD"`
	LegacyName     string `envconfig:"SKUEXPORT_DB_NAME"`
	LegacySSLMode  string `envconfig:"SKUEXPORT_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"SKUEXPORT_SQLITE_PATH" default:"skuexport.db"`

	MaxOpenConns    int           `envconfig:"SKUEXPORT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SKUEXPORT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SKUEXPORT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SKUEXPORT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SKUEXPORT_REDIS_URL"`
	Address      string        `envconfig:"SKUEXPORT_REDIS_ADDR"`
	Password     string        `envconfig:"SKUEXPORT_REDIS_PASSWORD"`
	DB           int           `envconfig:"SKUEXPORT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SKUEXPORT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SKUEXPORT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SKUEXPORT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SKUEXPORT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SKUEXPORT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether enough settings exist to dial redis.
func (r RedisConfig) Configured() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"SKUEXPORT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SKUEXPORT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SKUEXPORT_JWT_EXPIRATION_MINUTES" default:"480"`
	RequireSession    bool   `envconfig:"SKUEXPORT_JWT_REQUIRE_SESSION" default:"true"`
}

// AccessTokenTTL returns the configured token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type CacheConfig struct {
	Backend    string        `envconfig:"SKUEXPORT_CACHE_BACKEND" default:"redis"`
	ExportTTL  time.Duration `envconfig:"SKUEXPORT_CACHE_EXPORT_TTL" default:"5m"`
	OptionsTTL time.Duration `envconfig:"SKUEXPORT_CACHE_OPTIONS_TTL" default:"10m"`
	WarmOnBoot bool          `envconfig:"SKUEXPORT_CACHE_WARM_ON_BOOT" default:"true"`
}

// UsesRedis reports whether cache entries live in redis rather than process memory.
func (c CacheConfig) UsesRedis() bool {
	return strings.EqualFold(strings.TrimSpace(c.Backend), CacheBackendRedis)
}

func (c CacheConfig) validate(redisCfg RedisConfig) error {
	switch strings.ToLower(strings.TrimSpace(c.Backend)) {
	case CacheBackendRedis:
		if !redisCfg.Configured() {
			return fmt.Errorf("%s=%s requires %s or %s", EnvCacheBackend, CacheBackendRedis, EnvRedisURL, EnvRedisAddr)
		}
	case CacheBackendMemory:
	default:
		return fmt.Errorf("unsupported %s %q", EnvCacheBackend, c.Backend)
	}
	if c.ExportTTL <= 0 || c.OptionsTTL <= 0 {
		return fmt.Errorf("cache ttls must be positive")
	}
	return nil
}

type ExportConfig struct {
	StrictFilterValues bool   `envconfig:"SKUEXPORT_STRICT_FILTER_VALUES" default:"false"`
	CurrencySymbol     string `envconfig:"SKUEXPORT_CURRENCY_SYMBOL" default:"$"`
	CurrencyDecimals   int32  `envconfig:"SKUEXPORT_CURRENCY_DECIMALS" default:"2"`
	CurrencyPosition   string `envconfig:"SKUEXPORT_CURRENCY_POSITION" default:"left"`
}

type RateLimitConfig struct {
	ExportWindow    time.Duration `envconfig:"SKUEXPORT_RATE_LIMIT_EXPORT_WINDOW" default:"1m"`
	ExportUserLimit int           `envconfig:"SKUEXPORT_RATE_LIMIT_EXPORT_USER_LIMIT" default:"30"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SKUEXPORT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SKUEXPORT_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SKUEXPORT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if db.DSN != "" || useSQLite {
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
