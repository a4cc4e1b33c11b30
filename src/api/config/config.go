package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	SQLitePath     string
	MySQLDSN       string // when set, MySQL is used instead of SQLite
	RedisURL       string // optional; in-memory rate limiting when empty
	JWTSecret      string
	NewsAPIKey     string // empty key means demo mode, never a startup error
	NewsAPIURL     string
	VerifyStrategy string // "keyword" or "tfidf"
	PasswordScheme string // "sha256" or "bcrypt"
	AllowOrigins   []string
	StaticDir      string
	UsageResetCron string
	RateLimit      int
	RateWindow     time.Duration
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvSlice(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return strings.Split(v, ",")
	}
	return def
}

func Load() Config {
	window := time.Duration(getenvInt("RATE_WINDOW_SECONDS", 60)) * time.Second
	return Config{
		Port:           getenv("PORT", "8080"),
		SQLitePath:     getenv("SQLITE_PATH", "users.db"),
		MySQLDSN:       getenv("MYSQL_DSN", ""),
		RedisURL:       getenv("REDIS_URL", ""),
		JWTSecret:      getenv("JWT_SECRET", "dev-only-secret"),
		NewsAPIKey:     getenv("NEWS_API_KEY", ""),
		NewsAPIURL:     getenv("NEWS_API_URL", "https://newsapi.org/v2/everything"),
		VerifyStrategy: getenv("VERIFY_STRATEGY", "keyword"),
		PasswordScheme: getenv("PASSWORD_SCHEME", "sha256"),
		AllowOrigins:   getenvSlice("ALLOW_ORIGINS", []string{"*"}),
		StaticDir:      getenv("STATIC_DIR", ""),
		UsageResetCron: getenv("USAGE_RESET_CRON", "0 0 * * *"),
		RateLimit:      getenvInt("RATE_LIMIT", 30),
		RateWindow:     window,
	}
}
