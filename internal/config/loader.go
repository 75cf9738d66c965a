package config

import (
	"fmt"

	"github.com/rpattn/clubsync/internal/db"
	"github.com/spf13/viper"
)

// Server holds the HTTP server configuration.
type Server struct {
	Port           int
	MaxUploadBytes int64
}

// Config is the full application configuration.
type Config struct {
	Database db.Config
	Server   Server
}

// Load reads config.yaml from the given path, with environment overrides
// (DB_HOST, DB_PORT, ...). A missing file falls back to defaults.
func Load(configPath string) (Config, error) {
	cfg := Config{
		Database: db.DefaultConfig(),
		Server: Server{
			Port:           8080,
			MaxUploadBytes: 20 << 20,
		},
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("DB")

	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("server.port") {
		cfg.Server.Port = v.GetInt("server.port")
	}
	if v.IsSet("server.max_upload_mb") {
		cfg.Server.MaxUploadBytes = v.GetInt64("server.max_upload_mb") << 20
	}

	return cfg, nil
}
