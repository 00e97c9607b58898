package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// StoreConfig selects the snapshot store backend: memory, sqlite or redis
type StoreConfig struct {
	Backend    string
	SQLitePath string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CatalogConfig struct {
	SnapshotKey   string
	DebounceDelay time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() *Config {
	// A .env file is optional; environment variables win either way
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("STORE_BACKEND", "sqlite")
	viper.SetDefault("SQLITE_PATH", "catalog.db")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SNAPSHOT_KEY", "catalog-products")
	viper.SetDefault("DEBOUNCE_DELAY_MS", 300)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"})

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Store: StoreConfig{
			Backend:    viper.GetString("STORE_BACKEND"),
			SQLitePath: viper.GetString("SQLITE_PATH"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Catalog: CatalogConfig{
			SnapshotKey:   viper.GetString("SNAPSHOT_KEY"),
			DebounceDelay: time.Duration(viper.GetInt("DEBOUNCE_DELAY_MS")) * time.Millisecond,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
	}
}

// Addr joins host and port into a client address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
