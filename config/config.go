package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	TCPPort  int
	DBDriver string
	DBPath   string
	DBDSN    string

	DefaultExperimentID uint

	CSVMaxRows    int
	CSVMaxCols    int
	CSVHasHeaders bool
	CSVDelimiter  rune

	LogFile      string
	LogToConsole bool
	LogLevel     string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v, err := strconv.Atoi(os.Getenv(k)); err == nil {
			return v
		}
		return def
	}

	delim := get("CSV_DELIMITER", ",")

	cfg := AppConfig{
		Port:                get("PORT", "8080"),
		TCPPort:             getInt("TCP_PORT", 23),
		DBDriver:            get("DB_DRIVER", "sqlite"),
		DBPath:              get("DB_PATH", "greenhouse.db"),
		DBDSN:               get("DB_DSN", ""),
		DefaultExperimentID: uint(getInt("DEFAULT_EXPERIMENT_ID", 1)),
		CSVMaxRows:          getInt("CSV_MAX_ROWS", 1000),
		CSVMaxCols:          getInt("CSV_MAX_COLS", 100),
		CSVHasHeaders:       get("CSV_HAS_HEADERS", "true") == "true",
		CSVDelimiter:        []rune(delim)[0],
		LogFile:             get("LOG_FILE", ""),
		LogToConsole:        get("LOG_TO_CONSOLE", "true") == "true",
		LogLevel:            get("LOG_LEVEL", "info"),
	}
	log.Printf("[cfg] port=%s tcp=%d driver=%s", cfg.Port, cfg.TCPPort, cfg.DBDriver)
	return cfg
}
