package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	BackendURL  string
	HTTPTimeout time.Duration
	Debug       bool
	LogPath     string
}

// Load reads an optional .env file plus environment variables. A missing
// .env is not an error; the app must start with zero setup.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("CINEBOOK_BACKEND_URL", "http://localhost:4000/api")
	v.SetDefault("CINEBOOK_HTTP_TIMEOUT_SECONDS", 12)
	v.SetDefault("CINEBOOK_DEBUG", false)
	v.SetDefault("CINEBOOK_LOG_PATH", "logs/")

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}
	v.AutomaticEnv()

	return &Config{
		BackendURL:  v.GetString("CINEBOOK_BACKEND_URL"),
		HTTPTimeout: time.Duration(v.GetInt("CINEBOOK_HTTP_TIMEOUT_SECONDS")) * time.Second,
		Debug:       v.GetBool("CINEBOOK_DEBUG"),
		LogPath:     v.GetString("CINEBOOK_LOG_PATH"),
	}, nil
}
