package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"

	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Settings holds everything the application reads from the environment.
type Settings struct {
	AppEnv  string
	AppPort string

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	TokenTTL  time.Duration

	MediaRoot     string
	MaxUploadSize int64
	IndexCacheTTL time.Duration
}

// IsDev reports whether the app runs in the development environment.
func (s *Settings) IsDev() bool { return s.AppEnv == EnvDev }

// Load reads .env (if any) and the process environment into Settings.
func Load() (*Settings, error) {
	// .env is optional, real environment variables always win
	_ = godotenv.Load()

	s := &Settings{
		AppEnv:        getenv("APP_ENV", EnvDev),
		AppPort:       getenv("APP_PORT", "8000"),
		DBDriver:      getenv("DB_DRIVER", DriverMySQL),
		DBDSN:         os.Getenv("DB_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getenvInt("REDIS_DB", 0),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      getenvDuration("TOKEN_TTL", 24*time.Hour),
		MediaRoot:     getenv("MEDIA_ROOT", "media"),
		MaxUploadSize: int64(getenvInt("MAX_UPLOAD_SIZE", 5<<20)),
		IndexCacheTTL: getenvDuration("INDEX_CACHE_TTL", 20*time.Second),
	}

	if s.IsDev() {
		if s.DBDSN == "" {
			s.DBDriver = DriverSQLite
			s.DBDSN = "file:yatube.db?_foreign_keys=1"
		}
		if s.JWTSecret == "" {
			s.JWTSecret = "dev-secret-key"
		}
		return s, nil
	}

	if s.DBDSN == "" {
		return nil, errors.New("DB_DSN is not set")
	}
	if s.RedisAddr == "" {
		return nil, errors.New("REDIS_ADDR is not set")
	}
	if s.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return s, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
