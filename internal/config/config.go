package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	applog "eshopadmin/internal/log"
)

type Config struct {
	Port         string
	DBDriver     string // sqlite | pgx
	DBDSN        string
	MaxOpenConns int
	ConnLifetime time.Duration
	EnsureSchema bool
	LogFile      string
	LogLevel     string
	TemplatesDir string
	SessionIdle  time.Duration
	S3           S3Config
}

// S3Config is only consulted when a file path names an s3:// target.
type S3Config struct {
	Region    string
	Endpoint  string
	PathStyle bool
}

func Load() Config {
	// .env is optional
	_ = godotenv.Load()

	driver := strings.ToLower(getEnv("DB_DRIVER", "sqlite"))
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		DBDriver:     driver,
		DBDSN:        getEnv("DB_DSN", "eshop.db"),
		MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 1),
		ConnLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		// the postgres schema is owned by the migration scripts
		EnsureSchema: getEnvAsBool("DB_ENSURE_SCHEMA", driver == "sqlite"),
		LogFile:      getEnv("LOG_FILE", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		TemplatesDir: getEnv("TEMPLATES_DIR", "./web/templates"),
		SessionIdle:  getEnvAsDuration("SESSION_IDLE", 30*time.Minute),
		S3: S3Config{
			Region:    getEnv("FILESTORE_S3_REGION", "us-east-1"),
			Endpoint:  getEnv("FILESTORE_S3_ENDPOINT", ""),
			PathStyle: getEnvAsBool("FILESTORE_S3_PATH_STYLE", false),
		},
	}
	return cfg
}

// Fields is the loggable view of the config; the DSN is masked for postgres
// since it usually carries a password.
func (c Config) Fields() map[string]any {
	dsn := c.DBDSN
	if c.DBDriver != "sqlite" {
		dsn = "***MASKED***"
	}
	return map[string]any{
		"port":           c.Port,
		"db_driver":      c.DBDriver,
		"db_dsn":         dsn,
		"max_open_conns": c.MaxOpenConns,
		"ensure_schema":  c.EnsureSchema,
		"log_file":       c.LogFile,
		"log_level":      c.LogLevel,
		"session_idle":   c.SessionIdle.String(),
	}
}

func (c Config) LogStartup() {
	applog.Event("config.load", c.Fields())
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return def
}
