package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	AppName    = "Screen Shooter"
	AppID      = "com.screenshooter.app"
	AppVersion = "1.0.0"

	// CaptureOffset is added to every user delay so the hidden window has
	// left the screen before the grab.
	CaptureOffset = 25 * time.Millisecond

	MaxDelaySeconds = 60
)

var ErrMissingSecret = errors.New("imgur client secret not configured")

type Config struct {
	SecretFile    string
	ClientID      string
	ClientSecret  string
	CaptureOffset time.Duration
	DefaultDelay  int
	UploadTimeout time.Duration
	LogLevel      string
}

// Load reads the environment and the dotenv secret file. A missing or
// incomplete secret file is an error; the caller decides whether that is fatal.
func Load() (*Config, error) {
	cfg := &Config{
		SecretFile:    getEnv("SHOOTER_SECRET_FILE", "imgur.env"),
		CaptureOffset: CaptureOffset,
		DefaultDelay:  clampDelay(getEnvAsInt("SHOOTER_DEFAULT_DELAY", 0)),
		UploadTimeout: time.Duration(getEnvAsInt("SHOOTER_UPLOAD_TIMEOUT", 60)) * time.Second,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.loadSecret(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadSecret() error {
	values, err := godotenv.Read(c.SecretFile)
	if err != nil {
		return fmt.Errorf("read secret file %s: %w", c.SecretFile, err)
	}

	c.ClientID = firstNonEmpty(os.Getenv("IMGUR_CLIENT_ID"), values["IMGUR_CLIENT_ID"])
	c.ClientSecret = firstNonEmpty(os.Getenv("IMGUR_CLIENT_SECRET"), values["IMGUR_CLIENT_SECRET"])

	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("%w: %s must define IMGUR_CLIENT_ID and IMGUR_CLIENT_SECRET", ErrMissingSecret, c.SecretFile)
	}
	return nil
}

func clampDelay(seconds int) int {
	if seconds < 0 {
		return 0
	}
	if seconds > MaxDelaySeconds {
		return MaxDelaySeconds
	}
	return seconds
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
