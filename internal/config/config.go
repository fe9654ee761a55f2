package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DefaultProductsURL = "http://localhost:5000/produtos"
)

type AppConfig struct {
	API     *APIConfig     `mapstructure:"api"`
	Gin     *GinConfig     `mapstructure:"gin"`
	Backend *BackendConfig `mapstructure:"backend"`
}

type APIConfig struct {
	Port               string   `mapstructure:"port"`
	Environment        string   `mapstructure:"environment"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

// BackendConfig points at the catalog backend the product list is read from.
// A zero Timeout leaves the outbound request unbounded.
type BackendConfig struct {
	ProductsURL string        `mapstructure:"products_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

func (c *AppConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.API, validation.Required),
		validation.Field(&c.Gin, validation.Required),
		validation.Field(&c.Backend, validation.Required),
	)
}

func (c *APIConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Port, validation.Required, is.Digit),
		validation.Field(&c.Environment, validation.Required, validation.In(EnvDevelopment, EnvProduction)),
	)
}

func (c *GinConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Mode, validation.Required, validation.In("debug", "release", "test")),
	)
}

func (c *BackendConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.ProductsURL, validation.Required, is.URL),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// Source is a config file plus environment overrides, e.g. BACKEND_PRODUCTS_URL
// overrides backend.products_url.
type Source struct {
	v *viper.Viper
}

func Open(path string) (*Source, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	return &Source{v: v}, nil
}

// Load reads and validates the config file at path.
func Load(path string) (*AppConfig, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}

	return src.Config()
}

func (s *Source) Config() (*AppConfig, error) {
	var conf AppConfig
	if err := s.v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config -> %w", err)
	}

	return &conf, nil
}

// Watch calls onChange with the re-read config every time the file is
// written. Reloads that fail validation are logged and dropped.
func (s *Source) Watch(onChange func(conf *AppConfig)) {
	s.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		conf, err := s.Config()
		if err != nil {
			zap.L().Warn("ignoring config reload", zap.String("file", e.Name), zap.Error(err))
			return
		}

		zap.L().Info("config reloaded", zap.String("file", e.Name))
		onChange(conf)
	})
	s.v.WatchConfig()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", "3000")
	v.SetDefault("api.environment", EnvDevelopment)
	v.SetDefault("api.base_url", "localhost:3000")
	v.SetDefault("api.allowed_cors_domains", []string{})
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("backend.products_url", DefaultProductsURL)
	v.SetDefault("backend.timeout", "0s")
}
