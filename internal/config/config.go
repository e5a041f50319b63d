package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address        string `mapstructure:"address"`
	Port           int    `mapstructure:"port"`
	Mode           string `mapstructure:"mode"`
	RequestTimeout int    `mapstructure:"request_timeout_seconds"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type MediaConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	PublicURL string `mapstructure:"public_url"`
}

type RevalidateConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

type RateLimitConfig struct {
	Login  int `mapstructure:"login"`
	Public int `mapstructure:"public"`
	Admin  int `mapstructure:"admin"`
}

// SeedConfig describes the initial super-admin created on first start.
type SeedConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Media      MediaConfig      `mapstructure:"media"`
	Revalidate RevalidateConfig `mapstructure:"revalidate"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Seed       SeedConfig       `mapstructure:"seed"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		// environment overrides, e.g. ADZ_SERVER_PORT=9000
		v.SetEnvPrefix("ADZ")
		v.AutomaticEnv()

		v.SetDefault("server.request_timeout_seconds", 25)
		v.SetDefault("jwt.expire_hours", 24)
		v.SetDefault("rate_limit.login", 10)
		v.SetDefault("rate_limit.public", 60)
		v.SetDefault("rate_limit.admin", 30)

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
