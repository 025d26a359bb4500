package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// DefaultProfileImageURL is shown when PROFILE_IMAGE_URL is not set.
const DefaultProfileImageURL = "https://kotonohaworks.com/free-icons/wp-content/uploads/kkrn_icon_user_1.png"

// ErrAPIURLMissing is returned by Load when no API base URL is configured.
var ErrAPIURLMissing = errors.New("config: API_URL is not set")

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	API struct {
		URL            string `yaml:"url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"` // 0 = без таймаута
	} `yaml:"api"`

	Profile struct {
		DefaultImageURL string `yaml:"default_image_url"`
	} `yaml:"profile"`

	Jobs struct {
		IndexPath string `yaml:"index_path"`
	} `yaml:"jobs"`

	// JWT.Secret проверяет подпись токена для WebSocket и служебных маршрутов.
	// Пустой секрет отключает их.
	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Upload struct {
		MaxSize      int64 `yaml:"max_size"`      // Max image size in bytes
		MaxWidth     int   `yaml:"max_width"`     // Job images are scaled down to this width
		ImageQuality int   `yaml:"image_quality"` // JPEG quality (1-100)
	} `yaml:"upload"`
}

// Load reads the optional yaml file and overlays environment variables.
// It is called once at startup; the result is passed down explicitly.
func Load() (*Config, error) {
	// .env is optional, real env vars win
	_ = godotenv.Load()

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	explicit := configPath != ""
	if !explicit {
		configPath = "config/config.yaml"
	}

	if err := readFile(configPath, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if cfg.API.URL == "" {
		return nil, ErrAPIURLMissing
	}
	return &cfg, nil
}

func readFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v := strings.TrimSpace(os.Getenv(key)); v != "" {
				*dst = v
				return
			}
		}
	}

	setString(&cfg.API.URL, "API_URL", "NEXT_PUBLIC_API_URL")
	setString(&cfg.Profile.DefaultImageURL, "PROFILE_IMAGE_URL", "NEXT_PUBLIC_PROFILE_IMAGE_URL")
	setString(&cfg.Server.Host, "SERVER_HOST")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Jobs.IndexPath, "JOBS_INDEX_PATH")
	setString(&cfg.JWT.Secret, "JWT_SECRET")

	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid SERVER_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("API_TIMEOUT_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid API_TIMEOUT_SECONDS %q: %w", v, err)
		}
		cfg.API.TimeoutSeconds = seconds
	}
	return nil
}

func applyDefaults(cfg *Config) {
	cfg.API.URL = strings.TrimRight(cfg.API.URL, "/")

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Profile.DefaultImageURL == "" {
		cfg.Profile.DefaultImageURL = DefaultProfileImageURL
	}
	if cfg.Jobs.IndexPath == "" {
		cfg.Jobs.IndexPath = "/jobs"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if cfg.Upload.MaxWidth == 0 {
		cfg.Upload.MaxWidth = 1200
	}
	if cfg.Upload.ImageQuality == 0 {
		cfg.Upload.ImageQuality = 85
	}
}

// Addr is the listen address for the http server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// APITimeout returns zero when no client timeout is configured.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}
