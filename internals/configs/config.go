// file: internals/configs/config.go
package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"trainingcenter_backend/internals/helpers/dbtime"
)

// Config is everything the process reads from the environment.
type Config struct {
	Port          string
	DBAutoMigrate bool
	RedisAddr     string
	GroupCacheTTL time.Duration
	Timezone      string
	Location      *time.Location
	LogLevel      string
	CORSOrigins   []string
	RateLimitMax  int
}

// =======================
// ENV LOADER
// =======================

// LoadEnv reads .env when present; in containers the system env wins.
func LoadEnv() Config {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			zap.L().Info(".env not found, using system environment")
		} else {
			zap.L().Info(".env loaded")
		}
	}

	// An unknown zone would otherwise reach the access logger unchecked.
	loc := dbtime.LoadLocation(GetEnv("APP_TIMEZONE", "UTC"))

	return Config{
		Port:          GetEnv("PORT", "3000"),
		DBAutoMigrate: GetBool("DB_AUTO_MIGRATE", true),
		RedisAddr:     GetEnv("REDIS_ADDR"),
		GroupCacheTTL: GetDuration("GROUP_CACHE_TTL", 5*time.Minute),
		Timezone:      loc.String(),
		Location:      loc,
		LogLevel:      GetEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitList(GetEnv("CORS_ORIGINS", "http://localhost:5173")),
		RateLimitMax:  GetInt("RATE_LIMIT_MAX", 100),
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(strings.TrimSpace(GetEnv(key))); err == nil {
		return v
	}
	return def
}

func GetInt(key string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(GetEnv(key))); err == nil {
		return v
	}
	return def
}

func GetDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(strings.TrimSpace(GetEnv(key))); err == nil {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
