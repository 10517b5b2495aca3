package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL        string `envconfig:"DATABASE_URL" required:"true"`
	HTTPPort           string `envconfig:"HTTP_PORT"    default:":8080"`
	AuthServiceURL     string `envconfig:"AUTH_SERVICE_URL" required:"true"`
	AuthTimeoutSeconds int    `envconfig:"AUTH_TIMEOUT_SECONDS" default:"5"`
	LogLevel           string `envconfig:"LOG_LEVEL"    default:"info"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		err = envconfig.Process("", &config)
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: HTTP Port=%s, AuthServiceURL=%s, LogLevel=%s",
			config.HTTPPort, config.AuthServiceURL, config.LogLevel)
	})
	return &config
}
