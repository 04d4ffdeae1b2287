// Package config provides centralized configuration for the E2E suite.
// It loads settings from environment variables and an optional .env file
// at the repository root, validates required fields, and provides the
// same defaults the suite has always shipped with.
//
// Priority: real environment variable > .env entry > built-in default.
// The loaded Config is an explicit struct constructed once per process
// and passed by reference; there is no ambient global.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/GunarsK-portfolio/e2e-tests/internal/logutil"
)

// Browser engine names accepted by TEST_BROWSER.
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

// Config holds all suite configuration.
type Config struct {
	// Application URLs
	AdminWebURL  string
	AdminAPIURL  string
	AuthAPIURL   string
	PublicWebURL string
	PublicAPIURL string

	// Credentials
	AdminUsername string
	AdminPassword string
	DemoUsername  string
	DemoPassword  string

	// Browser behavior
	Headless          bool
	SlowMo            time.Duration
	Timeout           time.Duration
	Browser           string // chromium, firefox, webkit
	IgnoreHTTPSErrors bool

	// Artifacts
	ScreenshotDir string
	StatePath     string // cached browser storage state for session reuse
}

// ValidationError collects all configuration problems found during Validate.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Load reads configuration from the environment and the repository .env file.
func Load() (*Config, error) {
	// Existing environment variables win over .env entries.
	if envFile := findEnvFile(); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] could not read .env file: %v\n", err)
		}
	}

	cfg := &Config{
		AdminUsername: os.Getenv("TEST_ADMIN_USERNAME"),
		AdminPassword: os.Getenv("TEST_ADMIN_PASSWORD"),
		DemoUsername:  os.Getenv("TEST_DEMO_USERNAME"),
		DemoPassword:  os.Getenv("TEST_DEMO_PASSWORD"),

		AdminWebURL:  getEnvOrDefault("TEST_ADMIN_WEB_URL", "http://localhost:81"),
		AdminAPIURL:  getEnvOrDefault("TEST_ADMIN_API_URL", "http://localhost:8083"),
		AuthAPIURL:   getEnvOrDefault("TEST_AUTH_API_URL", "http://localhost:8084"),
		PublicWebURL: getEnvOrDefault("TEST_PUBLIC_WEB_URL", "http://localhost:80"),
		PublicAPIURL: getEnvOrDefault("TEST_PUBLIC_API_URL", "http://localhost:8082"),

		Headless:          ParseBool(getEnvOrDefault("TEST_HEADLESS", "false")),
		SlowMo:            time.Duration(parseIntOrDefault("TEST_SLOW_MO", 0)) * time.Millisecond,
		Timeout:           time.Duration(parseIntOrDefault("TEST_TIMEOUT", 30000)) * time.Millisecond,
		Browser:           getEnvOrDefault("TEST_BROWSER", BrowserChromium),
		IgnoreHTTPSErrors: ParseBool(getEnvOrDefault("TEST_IGNORE_HTTPS_ERRORS", "false")),

		ScreenshotDir: getEnvOrDefault("TEST_SCREENSHOT_DIR", os.TempDir()),
		StatePath:     getEnvOrDefault("TEST_STATE_PATH", defaultStatePath()),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
// Missing credentials are not an error here: the session selector
// degrades to cached-context or manual login without them.
func (c *Config) Validate() error {
	var errs []string

	for name, value := range map[string]string{
		"TEST_ADMIN_WEB_URL":  c.AdminWebURL,
		"TEST_PUBLIC_WEB_URL": c.PublicWebURL,
	} {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, name+" must not be empty")
		}
	}

	switch c.Browser {
	case BrowserChromium, BrowserFirefox, BrowserWebKit:
	default:
		errs = append(errs, fmt.Sprintf("TEST_BROWSER must be one of chromium, firefox, webkit (got %q)", c.Browser))
	}

	if c.Timeout <= 0 {
		errs = append(errs, "TEST_TIMEOUT must be positive")
	}
	if c.SlowMo < 0 {
		errs = append(errs, "TEST_SLOW_MO must not be negative")
	}
	if c.AdminUsername != "" && c.AdminPassword == "" {
		errs = append(errs, "TEST_ADMIN_PASSWORD is required when TEST_ADMIN_USERNAME is set")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// HasAdminCredentials reports whether a credential login is possible.
func (c *Config) HasAdminCredentials() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

// HasDemoCredentials reports whether the restricted demo account is configured.
func (c *Config) HasDemoCredentials() bool {
	return c.DemoUsername != "" && c.DemoPassword != ""
}

// String renders the configuration with passwords masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"admin_web=%s public_web=%s browser=%s headless=%t timeout=%s admin_user=%s admin_password=%s demo_user=%s demo_password=%s",
		c.AdminWebURL, c.PublicWebURL, c.Browser, c.Headless, c.Timeout,
		c.AdminUsername, logutil.MaskSecret(c.AdminPassword),
		c.DemoUsername, logutil.MaskSecret(c.DemoPassword),
	)
}

// ParseBool parses the truthy value forms accepted across the suite.
func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

// RepositoryRoot resolves the module root from this source file's location,
// so tests and runners behave the same from any working directory.
func RepositoryRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("failed to resolve repository root")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}

func findEnvFile() string {
	path := filepath.Join(RepositoryRoot(), ".env")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func defaultStatePath() string {
	return filepath.Join(RepositoryRoot(), ".auth", "context.json")
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
