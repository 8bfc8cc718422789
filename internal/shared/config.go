package shared

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	StoreBackend string // file | mysql
	DataPath     string
	UploadsDir   string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	CacheTTL     time.Duration
	ReviewRPS    int
	SeedPath     string
	SeedForce    bool
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":4000"),
		MetricsAddr:  env("METRICS_ADDR", ""),
		StoreBackend: env("STORE_BACKEND", "file"),
		DataPath:     env("DATA_PATH", "db.json"),
		UploadsDir:   env("UPLOADS_DIR", "uploads"),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/pitchside?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", ""),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		ReviewRPS:    atoi("REVIEW_RPS", 5),
		SeedPath:     env("SEED_PATH", "seed/venues.json"),
		SeedForce:    env("SEED_FORCE", "") == "1",
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
