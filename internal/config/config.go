package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"staffplan/internal/kds"
	"staffplan/internal/workforce"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	KDS                 kds.Config
	DataPath            string
	LogDir              string
	CacheDir            string
	HTTPPort            int
	OpenBrowser         bool
	EnableMermaidCharts bool

	DefaultDistrictID int
	DefaultHorizon    int
	DefaultScenario   workforce.ScenarioParameters
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	cacheDir := filepath.Join(dataPath, "cache")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", cacheDir).Msg("Failed to create cache directory")
	}

	scenario := workforce.DefaultScenario()
	scenario.AvgStaffCost = getEnvInt("DEFAULT_AVG_STAFF_COST", scenario.AvgStaffCost)
	if err := scenario.Validate(); err != nil {
		log.Warn().Err(err).Msg("DEFAULT_AVG_STAFF_COST out of range, using 35000")
		scenario = workforce.DefaultScenario()
	}

	horizon := getEnvInt("DEFAULT_HORIZON", 6)
	if err := kds.ValidateHorizon(horizon); err != nil {
		log.Warn().Int("horizon", horizon).Msg("DEFAULT_HORIZON must be 6, 12 or 18, using 6")
		horizon = 6
	}

	cfg := &AppConfig{
		KDS: kds.Config{
			BaseURL:      getEnv("KDS_API_URL", ""),
			Token:        getEnv("KDS_API_TOKEN", ""),
			DBPath:       getEnv("KDS_DB_PATH", filepath.Join(dataPath, "kds.db")),
			RequestDelay: time.Duration(getEnvInt("KDS_REQUEST_DELAY_MS", 0)) * time.Millisecond,
			CacheTTL:     time.Duration(getEnvInt("KDS_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		DataPath:            dataPath,
		LogDir:              logDir,
		CacheDir:            cacheDir,
		HTTPPort:            getEnvInt("HTTP_PORT", 8080),
		OpenBrowser:         getEnvBool("OPEN_BROWSER", false),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
		DefaultDistrictID:   getEnvInt("DEFAULT_DISTRICT_ID", 5),
		DefaultHorizon:      horizon,
		DefaultScenario:     scenario,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
