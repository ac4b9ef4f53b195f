package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Usage    UsageConfig
	Storage  StorageConfig
	Upload   UploadConfig
	Matching MatchingConfig
	Fetch    FetchConfig
}

type AppConfig struct {
	AppName          string
	Environment      string
	HTTPPort         string
	LogLevel         string
	BodyLimit        int
	CORSAllowOrigins []string
	BcryptCost       int
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

func (c DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(c.DBHost) != ""
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		strings.TrimSpace(c.DBHost),
		strings.TrimSpace(c.DBPort),
		strings.TrimSpace(c.DBUser),
		c.DBPassword,
		strings.TrimSpace(c.DBName),
		strings.TrimSpace(c.DBSSLMode),
	)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

const (
	UsageBackendFile     = "file"
	UsageBackendRedis    = "redis"
	UsageBackendPostgres = "postgres"
	UsageBackendMemory   = "memory"
)

type UsageConfig struct {
	Backend string
	File    string
	Limit   int
}

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type StorageConfig struct {
	AccountBackend  string
	BatchBackend    string
	BatchTTL        time.Duration
	SeedDemoAccount bool
}

const (
	ArchiveNone = "none"
	ArchiveDisk = "disk"
	ArchiveS3   = "s3"
)

type UploadConfig struct {
	Archive     string
	Dir         string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	Workers     int
}

const (
	SimilarityPartialRatio = "partial_ratio"
	SimilarityLevenshtein  = "levenshtein"
)

type MatchingConfig struct {
	Similarity string
	Threshold  float64
}

type FetchConfig struct {
	Timeout   time.Duration
	UserAgent string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optFloat := func(key string, def float64) float64 {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	oneOf := func(key, value string, allowed ...string) string {
		for _, a := range allowed {
			if value == a {
				return value
			}
		}
		invalid = append(invalid, key)
		return value
	}

	cfg.App = AppConfig{
		AppName:          opt("APP_NAME", "resume-match"),
		Environment:      opt("APP_ENV", "development"),
		HTTPPort:         req("HTTP_PORT"),
		LogLevel:         opt("LOG_LEVEL", "info"),
		BodyLimit:        optInt("BODY_LIMIT_BYTES", 20*1024*1024),
		CORSAllowOrigins: splitList(opt("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		BcryptCost:       optInt("BCRYPT_COST", bcrypt.DefaultCost),
	}
	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		invalid = append(invalid, "BCRYPT_COST")
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", ""),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     opt("DB_NAME", ""),
		DBUser:     opt("DB_USER", ""),
		DBPassword: strings.TrimSpace(os.Getenv("DB_PASSWORD")),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		DB:       optInt("REDIS_DB", 0),
		TTL:      optDuration("REDIS_TTL", 600*time.Second),
	}

	cfg.Session = SessionConfig{
		Secret:     req("SESSION_SECRET"),
		CookieName: opt("SESSION_COOKIE_NAME", "session"),
		TTL:        optDuration("SESSION_TTL", 24*time.Hour),
		Secure:     optBool("COOKIE_SECURE", false),
	}

	cfg.Usage = UsageConfig{
		Backend: oneOf("USAGE_BACKEND", opt("USAGE_BACKEND", UsageBackendFile),
			UsageBackendFile, UsageBackendRedis, UsageBackendPostgres, UsageBackendMemory),
		File:  opt("USAGE_FILE", "usage.json"),
		Limit: optInt("USAGE_LIMIT", 10),
	}

	cfg.Storage = StorageConfig{
		AccountBackend:  oneOf("ACCOUNT_BACKEND", opt("ACCOUNT_BACKEND", BackendMemory), BackendMemory, BackendPostgres),
		BatchBackend:    oneOf("BATCH_BACKEND", opt("BATCH_BACKEND", BackendMemory), BackendMemory, BackendRedis),
		BatchTTL:        optDuration("BATCH_TTL", time.Hour),
		SeedDemoAccount: optBool("SEED_DEMO_ACCOUNT", true),
	}

	cfg.Upload = UploadConfig{
		Archive:     oneOf("UPLOAD_ARCHIVE", opt("UPLOAD_ARCHIVE", ArchiveDisk), ArchiveNone, ArchiveDisk, ArchiveS3),
		Dir:         opt("UPLOAD_DIR", "uploads"),
		S3Bucket:    opt("S3_BUCKET", ""),
		S3Region:    opt("S3_REGION", "auto"),
		S3Endpoint:  opt("S3_ENDPOINT", ""),
		S3AccessKey: opt("S3_ACCESS_KEY", ""),
		S3SecretKey: strings.TrimSpace(os.Getenv("S3_SECRET_KEY")),
		Workers:     optInt("UPLOAD_WORKERS", 4),
	}
	if cfg.Upload.Archive == ArchiveS3 && cfg.Upload.S3Bucket == "" {
		missing = append(missing, "S3_BUCKET")
	}

	cfg.Matching = MatchingConfig{
		Similarity: oneOf("SKILL_SIMILARITY", opt("SKILL_SIMILARITY", SimilarityPartialRatio),
			SimilarityPartialRatio, SimilarityLevenshtein),
		Threshold: optFloat("SKILL_THRESHOLD", 80),
	}
	if cfg.Matching.Threshold < 0 || cfg.Matching.Threshold > 100 {
		invalid = append(invalid, "SKILL_THRESHOLD")
	}

	cfg.Fetch = FetchConfig{
		Timeout:   optDuration("FETCH_TIMEOUT", 15*time.Second),
		UserAgent: opt("FETCH_USER_AGENT", "ResumeMatchFetcher/0.1"),
	}

	needsDB := cfg.Usage.Backend == UsageBackendPostgres || cfg.Storage.AccountBackend == BackendPostgres
	if needsDB && !cfg.Database.Enabled() {
		missing = append(missing, "DB_HOST")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
