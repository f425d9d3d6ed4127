package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// ShareBaseURL prefixes every generated quiz access link.
	ShareBaseURL string

	TeacherCodes          []string
	SessionSecret         string
	SessionTTL            time.Duration
	RequireTeacherSession bool

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	LogLevel slog.Level
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:                  mode,
		HTTPAddr:              envOr("HTTP_ADDR", ":8080"),
		DBDriver:              envOr("DB_DRIVER", "sqlite"),
		DBDSN:                 envOr("DB_DSN", ""),
		ShareBaseURL:          strings.TrimSuffix(envOr("SHARE_BASE_URL", "http://127.0.0.1:5500/frontend/schuelerView"), "/"),
		TeacherCodes:          csvOr("TEACHER_CODES", ""),
		SessionSecret:         envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		SessionTTL:            envDuration("SESSION_TTL", 8*time.Hour),
		RequireTeacherSession: envBool("REQUIRE_TEACHER_SESSION", false),
		CORSOriginsOnline:     csvOr("CORS_ORIGINS_ONLINE", "https://quizze.mindengage.ai"),
		CORSOriginsOffline:    csvOr("CORS_ORIGINS_OFFLINE", "http://127.0.0.1:5500,http://localhost:5500,http://127.0.0.1:8000,http://localhost:8000"),
		LogLevel:              envLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

// CORSOrigins returns the allow-list for the configured mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil && d > 0 {
		return d
	}
	return def
}
func envLevel(k string, def slog.Level) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(os.Getenv(k))); err != nil {
		return def
	}
	return lvl
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
