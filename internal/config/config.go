package config

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`

	// Upstream catalog API settings. The catalog changes slowly and upstream
	// offers no availability guarantee, so reads go through a TTL cache.
	CatalogAPIURL   string        `mapstructure:"CATALOG_API_URL"`
	CatalogTimeout  time.Duration `mapstructure:"CATALOG_TIMEOUT"`
	CatalogCacheTTL time.Duration `mapstructure:"CATALOG_CACHE_TTL"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("PORT", ":8080")
	viper.SetDefault("CATALOG_API_URL", "https://www.freetogame.com/api")
	viper.SetDefault("CATALOG_TIMEOUT", "10s")
	viper.SetDefault("CATALOG_CACHE_TTL", "1h")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn(".env file not found, loading from environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config into struct: %v", err)
	}
}
