package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to the name of every environment variable the runner reads.
const EnvPrefix = "QRHUB_"

const dotEnvFile = ".env"

func getConfigLocations() []string {
	return []string{
		"qrhub-tests.yaml",
		"config/qrhub-tests.yaml",
	}
}

// Config is the configuration of a test run.
type Config struct {
	BaseURL        string        `yaml:"base_url" env:"BASE_URL"`
	APIPath        string        `yaml:"api_path" env:"API_PATH"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT"`
	StartupTimeout time.Duration `yaml:"startup_timeout" env:"STARTUP_TIMEOUT"`
	UserAgent      string        `yaml:"user_agent" env:"USER_AGENT"`
	LogLevel       string        `yaml:"log_level" env:"LOG_LEVEL"`

	LoginEmail     string `yaml:"login_email" env:"LOGIN_EMAIL"`
	LoginPassword  string `yaml:"login_password" env:"LOGIN_PASSWORD"`
	SignupPassword string `yaml:"signup_password" env:"SIGNUP_PASSWORD"`
	EmailDomain    string `yaml:"email_domain" env:"EMAIL_DOMAIN"`

	PlanLimit int   `yaml:"plan_limit" env:"PLAN_LIMIT"`
	FakerSeed int64 `yaml:"faker_seed" env:"FAKER_SEED"`

	NFTID     string `yaml:"nft_id" env:"NFT_ID"`
	ListingID string `yaml:"listing_id" env:"LISTING_ID"`
}

var (
	ErrMissingBaseURL = errors.New("base URL is required")
	ErrInvalidTimeout = errors.New("timeouts must be positive")
	ErrInvalidLimit   = errors.New("plan limit must be positive")
)

func (c *Config) initDefaults() {
	c.BaseURL = "https://novatok-qr.preview.emergentagent.com"
	c.APIPath = "/api"
	c.RequestTimeout = 30 * time.Second
	c.StartupTimeout = 10 * time.Second
	c.UserAgent = "NovaTok-Test-Suite/1.0"
	c.LogLevel = "info"
	c.LoginEmail = "demo@novatok.app"
	c.LoginPassword = "demopassword"
	c.SignupPassword = "testpassword123"
	c.EmailDomain = "novatok.app"
	c.PlanLimit = 5
	c.NFTID = "test-nft-123"
	c.ListingID = "test-listing-456"
}

func (c *Config) parseConfigFile(flagPath string, osInterface OSInterface) error {
	configPath := flagPath
	if envPath := osInterface.Getenv(EnvPrefix + "CONFIG"); envPath != "" {
		if configPath != "" && configPath != envPath {
			return fmt.Errorf("conflicting config paths: flag=%s env=%s", configPath, envPath)
		}
		configPath = envPath
	}

	if configPath == "" {
		for _, loc := range getConfigLocations() {
			if _, err := osInterface.Stat(loc); err == nil {
				configPath = loc
				break
			}
		}
	}

	if configPath == "" {
		return nil
	}

	data, err := osInterface.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error parsing yaml config: %w", err)
	}
	return nil
}

// parseEnvVariables applies QRHUB_* variables. Variables from a .env file in the working
// directory are applied too, but the real environment takes precedence over them.
func (c *Config) parseEnvVariables(osInterface OSInterface) error {
	environment := make(map[string]string)
	if _, err := osInterface.Stat(dotEnvFile); err == nil {
		data, err := osInterface.ReadFile(dotEnvFile)
		if err != nil {
			return fmt.Errorf("error reading .env file: %w", err)
		}
		dotEnv, err := godotenv.Unmarshal(string(data))
		if err != nil {
			return fmt.Errorf("error parsing .env file: %w", err)
		}
		for k, v := range dotEnv {
			environment[k] = v
		}
	}
	for k, v := range env.ToMap(osInterface.Environ()) {
		environment[k] = v
	}

	if err := env.ParseWithOptions(c, env.Options{
		Prefix:      EnvPrefix,
		Environment: environment,
	}); err != nil {
		return fmt.Errorf("error parsing environment variables: %w", err)
	}
	return nil
}

// Validate checks that the configuration can be used for a run.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: must be an absolute http or https URL", c.BaseURL)
	}
	if c.RequestTimeout <= 0 || c.StartupTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.PlanLimit <= 0 {
		return ErrInvalidLimit
	}
	return nil
}

// APIBaseURL is the URL that API paths such as "/qr" are relative to.
func (c *Config) APIBaseURL() string {
	path := strings.Trim(c.APIPath, "/")
	base := strings.TrimSuffix(c.BaseURL, "/")
	if path == "" {
		return base
	}
	return base + "/" + path
}

// Load builds the configuration from defaults, then a YAML file, then the environment. Flags
// are applied by the caller, after which Validate should be called.
func Load(configPath string) (*Config, error) {
	return LoadWithOS(configPath, defaultOS)
}

func LoadWithOS(configPath string, osInterface OSInterface) (*Config, error) {
	var config Config

	config.initDefaults()

	if err := config.parseConfigFile(configPath, osInterface); err != nil {
		return nil, err
	}

	if err := config.parseEnvVariables(osInterface); err != nil {
		return nil, err
	}

	return &config, nil
}

// Flags holds command-line overrides. Zero values leave the loaded setting unchanged.
type Flags struct {
	BaseURL        string
	APIPath        string
	RequestTimeout time.Duration
	LogLevel       string
}

func (c *Config) ApplyFlags(f Flags) {
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.APIPath != "" {
		c.APIPath = f.APIPath
	}
	if f.RequestTimeout > 0 {
		c.RequestTimeout = f.RequestTimeout
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
}
