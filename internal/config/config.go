package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// readSecret reads a Docker secret from a file path specified by an env var
// with _FILE suffix. If FOO is already set directly, the file is skipped.
// If FOO_FILE is set, reads the file content and sets FOO.
func readSecret(envKey string) {
	if os.Getenv(envKey) != "" {
		return
	}
	fileKey := envKey + "_FILE"
	filePath := os.Getenv(fileKey)
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	val := strings.TrimSpace(string(data))
	os.Setenv(envKey, val)
}

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	NewBlack  NewBlackConfig
	Supabase  SupabaseConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	LogLevel  string
	ApiDomain string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewBlackConfig configures The New Black AI client.
type NewBlackConfig struct {
	APIKey          string
	BaseURL         string
	Timeout         time.Duration
	PollAttempts    int
	PollInterval    time.Duration
	ResultsEndpoint string
}

// SupabaseConfig covers the managed backend: Postgres, auth and storage.
type SupabaseConfig struct {
	URL                    string
	DatabaseURL            string
	JWTSecret              string
	JWKSIssuer             string
	StorageAccessKeyID     string
	StorageSecretAccessKey string
	StorageRegion          string
	StorageBucket          string
}

type RateLimitConfig struct {
	VideoPerHour  int
	UploadPerHour int
}

// StorageEndpoint is the S3-compatible endpoint exposed by Supabase Storage.
func (c SupabaseConfig) StorageEndpoint() string {
	if c.URL == "" {
		return ""
	}
	return strings.TrimRight(c.URL, "/") + "/storage/v1/s3"
}

// PublicObjectURL is the public URL prefix for objects in the configured bucket.
func (c SupabaseConfig) PublicObjectURL() string {
	if c.URL == "" {
		return ""
	}
	return strings.TrimRight(c.URL, "/") + "/storage/v1/object/public/" + c.StorageBucket
}

func Load() (*Config, error) {
	// Local development keeps credentials in .env.local like the web app did
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	// Read Docker Swarm secrets from _FILE env vars before Viper binds
	readSecret("REDIS_PASSWORD")
	readSecret("THE_NEW_BLACK_API_KEY")
	readSecret("SUPABASE_DB_URL")
	readSecret("SUPABASE_JWT_SECRET")
	readSecret("SUPABASE_STORAGE_ACCESS_KEY_ID")
	readSecret("SUPABASE_STORAGE_SECRET_ACCESS_KEY")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variables
	v.AutomaticEnv()

	// Bind environment variables with underscores to nested config keys
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("server.env", "SERVER_ENV")
	_ = v.BindEnv("server.log_level", "LOG_LEVEL")
	_ = v.BindEnv("server.api_domain", "API_DOMAIN")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")
	_ = v.BindEnv("newblack.api_key", "THE_NEW_BLACK_API_KEY")
	_ = v.BindEnv("newblack.base_url", "THE_NEW_BLACK_BASE_URL")
	_ = v.BindEnv("newblack.timeout", "THE_NEW_BLACK_TIMEOUT")
	_ = v.BindEnv("newblack.poll_attempts", "THE_NEW_BLACK_POLL_ATTEMPTS")
	_ = v.BindEnv("newblack.poll_interval", "THE_NEW_BLACK_POLL_INTERVAL")
	_ = v.BindEnv("newblack.results_endpoint", "THE_NEW_BLACK_RESULTS_ENDPOINT")
	_ = v.BindEnv("supabase.url", "SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL")
	_ = v.BindEnv("supabase.db_url", "SUPABASE_DB_URL", "DATABASE_URL")
	_ = v.BindEnv("supabase.jwt_secret", "SUPABASE_JWT_SECRET")
	_ = v.BindEnv("supabase.jwks_issuer", "SUPABASE_JWKS_ISSUER")
	_ = v.BindEnv("supabase.storage_access_key_id", "SUPABASE_STORAGE_ACCESS_KEY_ID")
	_ = v.BindEnv("supabase.storage_secret_access_key", "SUPABASE_STORAGE_SECRET_ACCESS_KEY")
	_ = v.BindEnv("supabase.storage_region", "SUPABASE_STORAGE_REGION")
	_ = v.BindEnv("supabase.storage_bucket", "SUPABASE_STORAGE_BUCKET")
	_ = v.BindEnv("ratelimit.video_per_hour", "RATELIMIT_VIDEO_PER_HOUR")
	_ = v.BindEnv("ratelimit.upload_per_hour", "RATELIMIT_UPLOAD_PER_HOUR")

	// Defaults
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// The New Black defaults
	v.SetDefault("newblack.base_url", "https://thenewblack.ai/api/1.1/wf")
	v.SetDefault("newblack.timeout", 120*time.Second)
	v.SetDefault("newblack.poll_attempts", 12)
	v.SetDefault("newblack.poll_interval", 5*time.Second)
	v.SetDefault("newblack.results_endpoint", "results")

	// Supabase defaults
	v.SetDefault("supabase.storage_region", "us-east-1")
	v.SetDefault("supabase.storage_bucket", "presentations")

	v.SetDefault("ratelimit.video_per_hour", 10)
	v.SetDefault("ratelimit.upload_per_hour", 50)

	// Try to read config file (optional)
	_ = v.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:      v.GetString("server.port"),
			Env:       v.GetString("server.env"),
			LogLevel:  v.GetString("server.log_level"),
			ApiDomain: v.GetString("server.api_domain"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		NewBlack: NewBlackConfig{
			APIKey:          v.GetString("newblack.api_key"),
			BaseURL:         v.GetString("newblack.base_url"),
			Timeout:         v.GetDuration("newblack.timeout"),
			PollAttempts:    v.GetInt("newblack.poll_attempts"),
			PollInterval:    v.GetDuration("newblack.poll_interval"),
			ResultsEndpoint: v.GetString("newblack.results_endpoint"),
		},
		Supabase: SupabaseConfig{
			URL:                    v.GetString("supabase.url"),
			DatabaseURL:            v.GetString("supabase.db_url"),
			JWTSecret:              v.GetString("supabase.jwt_secret"),
			JWKSIssuer:             v.GetString("supabase.jwks_issuer"),
			StorageAccessKeyID:     v.GetString("supabase.storage_access_key_id"),
			StorageSecretAccessKey: v.GetString("supabase.storage_secret_access_key"),
			StorageRegion:          v.GetString("supabase.storage_region"),
			StorageBucket:          v.GetString("supabase.storage_bucket"),
		},
		RateLimit: RateLimitConfig{
			VideoPerHour:  v.GetInt("ratelimit.video_per_hour"),
			UploadPerHour: v.GetInt("ratelimit.upload_per_hour"),
		},
	}

	return cfg, nil
}
