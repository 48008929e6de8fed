package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server is the API process configuration, read from the environment.
type Server struct {
	Port              string
	Env               string
	LogLevel          string
	LogFormat         string
	AssetDir          string
	DataDir           string
	StaticDir         string
	EnableSeriesCache bool
	SeriesCacheTTL    time.Duration
	AllowedOrigins    []string
}

func (s Server) Production() bool { return s.Env == "production" }

// LoadServer reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func LoadServer(envFiles ...string) (Server, error) {
	_ = godotenv.Load(envFiles...)

	s := Server{
		Port:              getenv("API_PORT", "8080"),
		Env:               getenv("API_ENV", "development"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogFormat:         getenv("LOG_FORMAT", "console"),
		AssetDir:          getenv("ASSET_DIR", "./examples/assets"),
		DataDir:           getenv("DATA_DIR", "./data"),
		StaticDir:         getenv("STATIC_DIR", "./web/dist"),
		EnableSeriesCache: true,
		SeriesCacheTTL:    time.Hour,
		AllowedOrigins:    []string{"*"},
	}
	if v := os.Getenv("ENABLE_SERIES_CACHE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Server{}, fmt.Errorf("ENABLE_SERIES_CACHE: %w", err)
		}
		s.EnableSeriesCache = b
	}
	if v := os.Getenv("SERIES_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Server{}, fmt.Errorf("SERIES_CACHE_TTL: invalid duration %q", v)
		}
		s.SeriesCacheTTL = d
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		s.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				s.AllowedOrigins = append(s.AllowedOrigins, o)
			}
		}
	}
	return s, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
