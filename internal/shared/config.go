package shared

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix           = "MOVIES"
	envSettingsFile     = "MOVIES_SETTINGS_FILE"
	defaultSettingsFile = "appsettings.yaml"
)

var (
	ErrMissingBaseURL = errors.New("WebServices:Reviews:BaseURL is required outside dev")
	ErrBadTimeout     = errors.New("request timeout must be positive")
)

// Config is built once at startup and handed to constructors by value.
type Config struct {
	AppEnv          string        `envconfig:"APP_ENV"`
	LogLevel        string        `envconfig:"LOG_LEVEL"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR"`
	MetricsAddr     string        `envconfig:"METRICS_ADDR"`
	ReviewsBaseURL  string        `envconfig:"REVIEWS_BASE_URL"`
	ReviewsRPS      int           `envconfig:"REVIEWS_RPS"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT"`
}

// settingsFile mirrors the hierarchical settings document.
type settingsFile struct {
	WebServices struct {
		Reviews struct {
			BaseURL string `yaml:"BaseURL"`
		} `yaml:"Reviews"`
	} `yaml:"WebServices"`
}

func Defaults() Config {
	return Config{
		AppEnv:          "prod",
		LogLevel:        "info",
		HTTPAddr:        ":8080",
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load layers defaults, the settings file named by MOVIES_SETTINGS_FILE and MOVIES_* variables.
func Load() (Config, error) {
	path := os.Getenv(envSettingsFile)
	if path == "" {
		path = defaultSettingsFile
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit settings file. A missing file is not an error.
func LoadFile(path string) (Config, error) {
	c := Defaults()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Debug().Str("path", path).Msg("settings file not found, using defaults")
	case err != nil:
		return Config{}, fmt.Errorf("read settings %s: %w", path, err)
	default:
		var sf settingsFile
		if err := yaml.Unmarshal(b, &sf); err != nil {
			return Config{}, fmt.Errorf("parse settings %s: %w", path, err)
		}
		if sf.WebServices.Reviews.BaseURL != "" {
			c.ReviewsBaseURL = sf.WebServices.Reviews.BaseURL
		}
	}

	// unset variables leave earlier layers alone
	if err := envconfig.Process(envPrefix, &c); err != nil {
		return Config{}, fmt.Errorf("error while parsing environment variables | %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) IsDev() bool { return c.AppEnv == "dev" || c.AppEnv == "development" }

func (c Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return ErrBadTimeout
	}
	if !c.IsDev() && c.ReviewsBaseURL == "" {
		return ErrMissingBaseURL
	}
	return nil
}
