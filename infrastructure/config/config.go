// Package config loads the settings of a test run: the application under test,
// its credentials, the wait bounds and how the browser is started.
//
// Values are resolved in order: built-in defaults, an optional YAML profile,
// then environment variables (a .env file may seed them, see LoadDotEnv).
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/zainbasra/orangehrm-automation-framework/domain/entities"
)

// Driver backends
const (
	DriverSelenium   = "selenium"
	DriverPlaywright = "playwright"
)

const (
	defaultBaseURL  = "https://opensource-demo.orangehrmlive.com/"
	defaultUsername = "Admin"
	defaultPassword = "admin123"
)

// Config holds everything a session harness needs.
type Config struct {
	// Application under test
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Wait bounds
	ImplicitWait    time.Duration `yaml:"implicit_wait"`
	ExplicitWait    time.Duration `yaml:"explicit_wait"`
	PageLoadTimeout time.Duration `yaml:"page_load_timeout"`
	PollInterval    time.Duration `yaml:"poll_interval"`

	// Browser
	Driver           string   `yaml:"driver"` // selenium or playwright
	Headless         bool     `yaml:"headless"`
	BrowserArgs      []string `yaml:"browser_args"`
	ChromeDriverPath string   `yaml:"chromedriver_path"`  // BROWSER_DRIVER_PATH
	ChromeBinaryPath string   `yaml:"chrome_binary_path"` // CHROME_BINARY_PATH
	DriverPort       int      `yaml:"driver_port"`
	RemoteURL        string   `yaml:"remote_url"` // existing WebDriver endpoint; no local chromedriver

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // text or json
}

// ValidationError represents a configuration validation error with multiple issues.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Default returns the settings of the public OrangeHRM demo.
func Default() *Config {
	return &Config{
		BaseURL:         defaultBaseURL,
		Username:        defaultUsername,
		Password:        defaultPassword,
		ImplicitWait:    10 * time.Second,
		ExplicitWait:    15 * time.Second,
		PageLoadTimeout: 30 * time.Second,
		PollInterval:    entities.DefaultPollInterval,
		Driver:          DriverSelenium,
		BrowserArgs: []string{
			"--start-maximized",
			"--disable-notifications",
			"--disable-popup-blocking",
		},
		DriverPort: 9515,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// LoadDotEnv seeds the environment from a .env file. A missing file is not an error.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Load resolves the configuration. path names an optional YAML profile.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config profile: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config profile %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var problems []string

	c.BaseURL = getEnvOrDefault("ORANGEHRM_BASE_URL", c.BaseURL)
	c.Username = getEnvOrDefault("ORANGEHRM_USERNAME", c.Username)
	c.Password = getEnvOrDefault("ORANGEHRM_PASSWORD", c.Password)
	c.Driver = strings.ToLower(getEnvOrDefault("ORANGEHRM_DRIVER", c.Driver))
	c.ChromeDriverPath = getEnvOrDefault("BROWSER_DRIVER_PATH", c.ChromeDriverPath)
	c.ChromeBinaryPath = getEnvOrDefault("CHROME_BINARY_PATH", c.ChromeBinaryPath)
	c.RemoteURL = getEnvOrDefault("SELENIUM_REMOTE_URL", c.RemoteURL)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnvOrDefault("LOG_FORMAT", c.LogFormat)

	if v := os.Getenv("ORANGEHRM_BROWSER_ARGS"); v != "" {
		c.BrowserArgs = strings.Fields(v)
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"ORANGEHRM_IMPLICIT_WAIT", &c.ImplicitWait},
		{"ORANGEHRM_EXPLICIT_WAIT", &c.ExplicitWait},
		{"ORANGEHRM_PAGE_LOAD_TIMEOUT", &c.PageLoadTimeout},
		{"ORANGEHRM_POLL_INTERVAL", &c.PollInterval},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", d.key, err))
			continue
		}
		*d.dst = parsed
	}

	if v := os.Getenv("ORANGEHRM_HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("ORANGEHRM_HEADLESS: %v", err))
		} else {
			c.Headless = b
		}
	}
	if v := os.Getenv("ORANGEHRM_DRIVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("ORANGEHRM_DRIVER_PORT: %v", err))
		} else {
			c.DriverPort = port
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Errors: problems}
	}
	return nil
}

// Validate checks that the configuration can drive a session.
func (c *Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("base_url %q is not an absolute URL", c.BaseURL))
	}
	if c.Username == "" {
		problems = append(problems, "username is required")
	}
	if c.Password == "" {
		problems = append(problems, "password is required")
	}
	if c.ImplicitWait < 0 {
		problems = append(problems, "implicit_wait must not be negative")
	}
	if c.ExplicitWait <= 0 {
		problems = append(problems, "explicit_wait must be positive")
	}
	if c.PageLoadTimeout <= 0 {
		problems = append(problems, "page_load_timeout must be positive")
	}
	if c.PollInterval <= 0 {
		problems = append(problems, "poll_interval must be positive")
	}
	switch c.Driver {
	case DriverSelenium, DriverPlaywright:
	default:
		problems = append(problems, fmt.Sprintf("driver %q must be %q or %q", c.Driver, DriverSelenium, DriverPlaywright))
	}
	if c.Driver == DriverSelenium && c.RemoteURL == "" && (c.DriverPort <= 0 || c.DriverPort > 65535) {
		problems = append(problems, fmt.Sprintf("driver_port %d is out of range", c.DriverPort))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log_format %q must be text or json", c.LogFormat))
	}

	if len(problems) > 0 {
		return &ValidationError{Errors: problems}
	}
	return nil
}

// WaitPolicy returns the explicit wait bound applied to every gateway operation.
func (c *Config) WaitPolicy() entities.WaitPolicy {
	return entities.WaitPolicy{Timeout: c.ExplicitWait, Interval: c.PollInterval}
}

// URL resolves a path against the base URL.
func (c *Config) URL(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func getEnvOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
