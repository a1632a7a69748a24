// Package server hosts the Warren REST server: configuration, HTTP routing,
// and the services behind the handlers.
package server

import (
	"strings"

	"github.com/spf13/viper"
)

// Config carries the server's runtime settings.
type Config struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	DatabasePath string `mapstructure:"database_path"`
	LogLevel     string `mapstructure:"log_level"`
}

// LoadConfig reads configuration from warren-server.yaml (if present, in the
// working directory) and WARREN_* environment variables. Environment
// variables win.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8750)
	v.SetDefault("database_path", "warren.db")
	v.SetDefault("log_level", "info")

	v.SetConfigName("warren-server")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("WARREN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
