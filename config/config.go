// Package config loads client configuration from defaults, an optional
// config file in the data dir, and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerURL      string
	DataDir        string
	RequestTimeout time.Duration
	DevMode        bool
}

// Load resolves configuration with environment over config file over
// defaults. A .env file in the working directory is loaded first when
// present; a missing one is not an error.
func Load(dataDirOverride string) (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	dataDir := dataDirOverride
	if dataDir == "" {
		dataDir = os.Getenv("SHULE_DATA_DIR")
	}
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config dir: %w", err)
		}
		dataDir = filepath.Join(base, "shulechat")
	}

	v := viper.New()
	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("dev_mode", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)

	v.SetEnvPrefix("SHULE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		ServerURL:      v.GetString("server_url"),
		DataDir:        dataDir,
		RequestTimeout: v.GetDuration("request_timeout"),
		DevMode:        v.GetBool("dev_mode"),
	}, nil
}
