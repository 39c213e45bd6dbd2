package cfg

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultResultsTTLSeconds = 300

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type Config struct {
	AppEnv  string
	AppPort string

	RedisConfig RedisConfig

	// DatabaseURL is optional; when empty the service runs on in-memory
	// repositories.
	DatabaseURL    string
	MigrationsPath string

	ResultsTTLSeconds int
	SnowflakeNodeID   int64
}

func Load() (*Config, error) {
	var errs []error

	// .env is optional outside local development
	_ = godotenv.Load()

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)
	redisHost := mustEnv("REDIS_HOST", &errs)
	redisPort := mustEnv("REDIS_PORT", &errs)
	redisPassword := os.Getenv("REDIS_PASSWORD")

	databaseURL := os.Getenv("DATABASE_URL")
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "file://migrations"
	}

	ttlSeconds := defaultResultsTTLSeconds
	if raw := os.Getenv("RESULTS_CACHE_TTL_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			errs = append(errs, errors.New("invalid env: RESULTS_CACHE_TTL_SECONDS"))
		} else {
			ttlSeconds = parsed
		}
	}

	var nodeID int64
	if raw := os.Getenv("SNOWFLAKE_NODE_ID"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs = append(errs, errors.New("conversion failed env: SNOWFLAKE_NODE_ID"))
		} else {
			nodeID = parsed
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		RedisConfig: RedisConfig{
			Host:     redisHost,
			Port:     redisPort,
			Password: redisPassword,
		},
		DatabaseURL:       databaseURL,
		MigrationsPath:    migrationsPath,
		ResultsTTLSeconds: ttlSeconds,
		SnowflakeNodeID:   nodeID,
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}
