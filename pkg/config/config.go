package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string
	LogFormat   string

	// WSAllowedOrigins restricts websocket upgrades; empty allows any origin.
	WSAllowedOrigins []string

	JWTSecret string
	JWTExpiry int64
	OTPCode   string

	StoreBackend    string // memory, firestore, redis, sqlite, postgres
	SQLitePath      string
	PostgresDSN     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisKeyPrefix  string
	FirebaseProject string

	FirebaseServiceAccountPath string
	FirebaseServiceAccountJSON string

	OpenAIKey           string
	OpenAIModel         string
	OpenAIBaseURL       string
	AITimeout           time.Duration
	BriefingRefreshCron string

	SnapshotSink   string // file, gcs, s3
	SnapshotDir    string
	SnapshotBucket string
	S3Region       string
	S3Endpoint     string
	S3AccessKeyID  string
	S3SecretKey    string
	S3PathStyle    bool
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "console"),

		WSAllowedOrigins: getEnvAsList("WS_ALLOWED_ORIGINS"),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry: getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours
		OTPCode:   getEnv("OTP_CODE", "123456"),

		StoreBackend:    getEnv("STORE_BACKEND", "memory"),
		SQLitePath:      getEnv("SQLITE_PATH", "resqnet.db"),
		PostgresDSN:     getEnv("POSTGRES_DSN", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         int(getEnvAsInt64("REDIS_DB", 0)),
		RedisKeyPrefix:  getEnv("REDIS_KEY_PREFIX", "resqnet:"),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),

		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),

		OpenAIKey:           getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
		AITimeout:           getEnvAsDuration("AI_TIMEOUT", 15*time.Second),
		BriefingRefreshCron: getEnv("BRIEFING_REFRESH_CRON", "@every 10m"),

		SnapshotSink:   getEnv("SNAPSHOT_SINK", "file"),
		SnapshotDir:    getEnv("SNAPSHOT_DIR", "snapshots"),
		SnapshotBucket: getEnv("SNAPSHOT_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:  getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:    getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PathStyle:    getEnv("S3_PATH_STYLE", "false") == "true",
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
