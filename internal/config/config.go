package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ImageFetchTimeout  time.Duration
	MaxRequestBodySize int64

	// Analysis tuning
	MaxAnalysisDimension int
	ParallelAnalysis     bool
	MaxWorkers           int

	// Image acquisition backend: "http" or "azure"
	StorageBackend   string
	AzureAccountName string
	AzureAccountKey  string
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:                 getEnvOrDefault("HOST", "0.0.0.0"),
		Port:                 getEnvOrDefault("PORT", "8080"),
		RequestTimeout:       parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		ImageFetchTimeout:    parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		MaxRequestBodySize:   parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB
		MaxAnalysisDimension: int(parseIntOrDefault("MAX_ANALYSIS_DIMENSION", 1600)),
		ParallelAnalysis:     parseBoolOrDefault("PARALLEL_ANALYSIS", true),
		MaxWorkers:           int(parseIntOrDefault("MAX_WORKERS", 0)), // 0 = NumCPU
		StorageBackend:       getEnvOrDefault("STORAGE_BACKEND", "http"),
		AzureAccountName:     os.Getenv("AZURE_ACCOUNT_NAME"),
		AzureAccountKey:      os.Getenv("AZURE_ACCOUNT_KEY"),
	}

	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.MaxAnalysisDimension < 0 {
		return nil, fmt.Errorf("MAX_ANALYSIS_DIMENSION must be >= 0 (got %d)", cfg.MaxAnalysisDimension)
	}
	if cfg.RequestTimeout <= 0 || cfg.ImageFetchTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s)",
			cfg.RequestTimeout, cfg.ImageFetchTimeout)
	}
	switch cfg.StorageBackend {
	case "http", "azure":
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND: %q", cfg.StorageBackend)
	}
	if cfg.StorageBackend == "azure" && (cfg.AzureAccountName == "" || cfg.AzureAccountKey == "") {
		return nil, fmt.Errorf("azure backend requires AZURE_ACCOUNT_NAME and AZURE_ACCOUNT_KEY")
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
