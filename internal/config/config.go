// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Database
	DatabasePath string

	// OpenAI API
	OpenAIAPIKey  string
	AnalysisModel string // text model for poem analysis (default: gpt-4o-mini)
	VisionModel   string // vision model for artwork analysis (default: gpt-4o)
	DailyLimitUSD float64

	// Matching
	MinMatchScore        float64
	MaxFameLevel         int
	CandidatePoolSize    int
	VisionCandidateCount int
	EnableVision         bool
	EnableExplanations   bool

	// Wikidata
	WikidataEndpoint string

	// Poetry source
	PoetryDBEndpoint string

	// Email delivery
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	EmailTo      string

	// File delivery
	OutputDir string

	// Logging
	LogLevel string

	// Scheduler settings
	DeliveryInterval time.Duration
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:     getEnv("DATABASE_PATH", "data/culturebot.db"),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		AnalysisModel:    getEnv("ANALYSIS_MODEL", "gpt-4o-mini"),
		VisionModel:      getEnv("VISION_MODEL", "gpt-4o"),
		WikidataEndpoint: getEnv("WIKIDATA_ENDPOINT", "https://query.wikidata.org/sparql"),
		PoetryDBEndpoint: getEnv("POETRYDB_ENDPOINT", "https://poetrydb.org"),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		EmailFrom:        getEnv("EMAIL_FROM", ""),
		EmailTo:          getEnv("EMAIL_TO", ""),
		OutputDir:        getEnv("OUTPUT_DIR", "data/pairings"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	var err error
	cfg.DailyLimitUSD, err = getEnvFloat("OPENAI_DAILY_LIMIT_USD", 2.0)
	if err != nil {
		return nil, err
	}
	cfg.MinMatchScore, err = getEnvFloat("MIN_MATCH_SCORE", 0.4)
	if err != nil {
		return nil, err
	}
	cfg.MaxFameLevel, err = getEnvInt("MAX_FAME_LEVEL", 20)
	if err != nil {
		return nil, err
	}
	cfg.CandidatePoolSize, err = getEnvInt("CANDIDATE_POOL_SIZE", 40)
	if err != nil {
		return nil, err
	}
	cfg.VisionCandidateCount, err = getEnvInt("VISION_CANDIDATE_COUNT", 6)
	if err != nil {
		return nil, err
	}
	cfg.SMTPPort, err = getEnvInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.EnableVision, err = getEnvBool("ENABLE_VISION", true)
	if err != nil {
		return nil, err
	}
	cfg.EnableExplanations, err = getEnvBool("ENABLE_EXPLANATIONS", true)
	if err != nil {
		return nil, err
	}

	cfg.DeliveryInterval, err = time.ParseDuration(getEnv("DELIVERY_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_INTERVAL: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.MinMatchScore < 0 || c.MinMatchScore > 1 {
		return fmt.Errorf("MIN_MATCH_SCORE must be between 0 and 1, got %g", c.MinMatchScore)
	}
	if c.MaxFameLevel < 0 {
		return fmt.Errorf("MAX_FAME_LEVEL must be non-negative, got %d", c.MaxFameLevel)
	}
	if c.VisionCandidateCount < 0 {
		return fmt.Errorf("VISION_CANDIDATE_COUNT must be non-negative, got %d", c.VisionCandidateCount)
	}
	return nil
}

// ValidateForAnalysis checks configuration needed for AI poem analysis.
// The keyword analyzer works without a key, so this is only required
// when the AI strategy is requested explicitly.
func (c *Config) ValidateForAnalysis() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required for AI analysis")
	}
	return nil
}

// ValidateForEmail checks configuration needed for email delivery.
func (c *Config) ValidateForEmail() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is required for email delivery")
	}
	if c.EmailFrom == "" {
		return fmt.Errorf("EMAIL_FROM is required for email delivery")
	}
	if c.EmailTo == "" {
		return fmt.Errorf("EMAIL_TO is required for email delivery")
	}
	return nil
}

// ValidateForServe checks all configuration needed for serve mode.
func (c *Config) ValidateForServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DeliveryInterval <= 0 {
		return fmt.Errorf("DELIVERY_INTERVAL must be positive")
	}
	// Email is optional in serve mode: pairings always land in the
	// file output and the match log.
	if c.SMTPHost != "" {
		return c.ValidateForEmail()
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
