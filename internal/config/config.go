package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath     = "./config.yaml"
	defaultPort           = 5000
	defaultMaxUploadBytes = 10 << 20 // 10 MiB
	defaultMaxPixels      = 40_000_000
	defaultRembgTimeout   = 60 * time.Second
	defaultColorTolerance = 48
)

const (
	BackendColorKey = "colorkey"
	BackendRembg    = "rembg"
)

type Config struct {
	Port           int     `yaml:"port" json:"port" validate:"min=1,max=65535"`
	MaxUploadBytes int64   `yaml:"max_upload_bytes" json:"max_upload_bytes" validate:"gt=0"`
	MaxPixels      int     `yaml:"max_pixels" json:"max_pixels" validate:"gt=0"`
	Matting        Matting `yaml:"matting" json:"matting"`
	Log            Log     `yaml:"log" json:"log"`
}

type Matting struct {
	Backend        string        `yaml:"backend" json:"backend" validate:"oneof=colorkey rembg"`
	RembgURL       string        `yaml:"rembg_url" json:"rembg_url" validate:"omitempty,url"`
	RembgModel     string        `yaml:"rembg_model" json:"rembg_model"`
	RembgTimeout   time.Duration `yaml:"rembg_timeout" json:"rembg_timeout" validate:"gte=0"`
	ColorTolerance int           `yaml:"color_tolerance" json:"color_tolerance" validate:"min=0,max=255"`
}

type Log struct {
	Level  string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" json:"format" validate:"oneof=json text"`
}

// Default возвращает конфигурацию, с которой сервис стартует без config.yaml.
func Default() *Config {
	return &Config{
		Port:           defaultPort,
		MaxUploadBytes: defaultMaxUploadBytes,
		MaxPixels:      defaultMaxPixels,
		Matting: Matting{
			Backend:        BackendColorKey,
			RembgTimeout:   defaultRembgTimeout,
			ColorTolerance: defaultColorTolerance,
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и валидирует результат.
func Load() (*Config, error) {
	c := Default()

	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// без файла работаем на дефолтах и ENV
	default:
		return nil, err
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// ListenAddr: адрес на всех интерфейсах.
func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Validate проверяет значения по тегам validate.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Matting.Backend == BackendRembg && c.Matting.RembgURL == "" {
		return fmt.Errorf("invalid config: matting.rembg_url is required for backend %q", BackendRembg)
	}
	return nil
}

func (c *Config) applyEnv() error {
	// ENV override
	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Port = n
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	if v := os.Getenv("MATTING_BACKEND"); v != "" {
		c.Matting.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("REMBG_URL"); v != "" {
		c.Matting.RembgURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("REMBG_MODEL"); v != "" {
		c.Matting.RembgModel = strings.TrimSpace(v)
	}
	if v := os.Getenv("REMBG_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REMBG_TIMEOUT: %w", err)
		}
		c.Matting.RembgTimeout = d
	}
	c.Log.Level = getenv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getenv("LOG_FORMAT", c.Log.Format)

	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
