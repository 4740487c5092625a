// Package config loads nanoinv settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "NANOINV"

// Storage backend names.
const (
	StorageFile  = "file"
	StorageInMem = "inmem"
	StorageDiskv = "diskv"
	StorageMySQL = "mysql"
	StorageRedis = "redis"
)

// Config is the nanoinv runtime configuration.
type Config struct {
	// File is the inventory data file for the file storage backend.
	File string `mapstructure:"file" validate:"required"`
	// LogFile receives the diagnostic log. Log lines are appended.
	LogFile string `mapstructure:"log_file" validate:"required"`
	Debug   bool   `mapstructure:"debug"`

	LowStockThreshold int `mapstructure:"low_stock_threshold"`

	Storage string `mapstructure:"storage" validate:"oneof=file inmem diskv mysql redis"`
	// StorageDSN is a MySQL DSN, a Redis URL or a diskv directory
	// depending on Storage.
	StorageDSN string `mapstructure:"storage_dsn" validate:"required_if=Storage mysql,required_if=Storage redis"`

	// MetricsFile, if set, is written with Prometheus text metrics.
	MetricsFile string `mapstructure:"metrics_file"`
}

var validate = validator.New()

// Load reads the configuration from environment variables prefixed
// with EnvPrefix. Variables in envFiles are loaded into the environment
// first without overriding it. With no envFiles an optional ".env" in
// the working directory is used.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) < 1 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("loading env files: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults also registers every key so AutomaticEnv picks it up on Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("file", "inventory.json")
	v.SetDefault("log_file", "inventory.log")
	v.SetDefault("debug", false)
	v.SetDefault("low_stock_threshold", 5)
	v.SetDefault("storage", StorageFile)
	v.SetDefault("storage_dsn", "")
	v.SetDefault("metrics_file", "")
}
