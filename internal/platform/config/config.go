package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var (
	errInvalidPort              = errors.New("config: invalid PORT number")
	errPageBudgetOutOfRange     = errors.New("config: DEFAULT_PAGE_BUDGET must be 1-20")
	errDiscoveryLimitOutOfRange = errors.New("config: CRAWL_DISCOVERY_LIMIT must be 1-50")
	errNegativeRateLimit        = errors.New("config: CRAWL_RATE_LIMIT must not be negative")
	errChunkSizeOutOfRange      = errors.New("config: LINK_CHECK_CHUNK_SIZE must be 1-20")
	errInvalidCacheTTL          = errors.New("config: AUDIT_CACHE_TTL must be a positive duration")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port                 string
	LogLevel             string
	DefaultPageBudget    int
	CrawlDiscoveryLimit  int
	CrawlRateLimit       float64
	CrawlRespectRobots   bool
	LinkCheckChunkSize   int
	AllowPrivateNetworks bool
	AuditCacheTTL        time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "ERROR"),
		DefaultPageBudget:    getEnvAsInt("DEFAULT_PAGE_BUDGET", 5),
		CrawlDiscoveryLimit:  getEnvAsInt("CRAWL_DISCOVERY_LIMIT", 9),
		CrawlRateLimit:       getEnvAsFloat("CRAWL_RATE_LIMIT", 0),
		CrawlRespectRobots:   getEnvAsBool("CRAWL_RESPECT_ROBOTS", false),
		LinkCheckChunkSize:   getEnvAsInt("LINK_CHECK_CHUNK_SIZE", 5),
		AllowPrivateNetworks: getEnvAsBool("ALLOW_PRIVATE_NETWORKS", false),
		AuditCacheTTL:        getEnvAsDuration("AUDIT_CACHE_TTL", 24*time.Hour),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.DefaultPageBudget < 1 || c.DefaultPageBudget > 20 {
		return fmt.Errorf("%w: got %d", errPageBudgetOutOfRange, c.DefaultPageBudget)
	}

	if c.CrawlDiscoveryLimit < 1 || c.CrawlDiscoveryLimit > 50 {
		return fmt.Errorf("%w: got %d", errDiscoveryLimitOutOfRange, c.CrawlDiscoveryLimit)
	}

	if c.CrawlRateLimit < 0 {
		return fmt.Errorf("%w: got %g", errNegativeRateLimit, c.CrawlRateLimit)
	}

	if c.LinkCheckChunkSize < 1 || c.LinkCheckChunkSize > 20 {
		return fmt.Errorf("%w: got %d", errChunkSizeOutOfRange, c.LinkCheckChunkSize)
	}

	if c.AuditCacheTTL <= 0 {
		return fmt.Errorf("%w: got %s", errInvalidCacheTTL, c.AuditCacheTTL)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsFloat(key string, fallback float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return v
}
