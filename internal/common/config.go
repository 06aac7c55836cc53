package common

import (
	"os"
	"strconv"
)

// Config holds the engine tunables.
type Config struct {
	// YellowFeverValidityDays is the delay between a yellow fever shot and
	// the start of immunity.
	YellowFeverValidityDays int
	// ReviewThreshold is the field confidence below which a value should be
	// routed to manual review.
	ReviewThreshold float64
	// PassportMinValidityMonths is the remaining passport validity required
	// at application time.
	PassportMinValidityMonths int
}

// LoadConfig loads configuration from environment variables, falling back to
// the consular defaults.
func LoadConfig() *Config {
	return &Config{
		YellowFeverValidityDays:   getEnvAsInt("DOCEXTRACT_YF_VALIDITY_DAYS", 10),
		ReviewThreshold:           getEnvAsFloat64("DOCEXTRACT_REVIEW_THRESHOLD", 0.70),
		PassportMinValidityMonths: getEnvAsInt("DOCEXTRACT_PASSPORT_MIN_VALIDITY_MONTHS", 6),
	}
}

// Helper functions for environment variable parsing
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
