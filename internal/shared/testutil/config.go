package testutil

import (
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/config"
)

// NewTestConfig creates a test configuration
// This removes the need for environment variables during testing
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "together-culture-api-test",
			Env:  "test",
			Port: 8080,
		},
		Database: config.DatabaseConfig{
			Driver:          config.DriverSQLite,
			Name:            ":memory:",
			MaxIdleConns:    1,
			MaxOpenConns:    1,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
			IsAutoMigrate:   true,
		},
		JWT: config.JWTConfig{
			Secret:        "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Issuer:        "together-culture-api",
			Audience:      "together-culture-web",
			Expiry:        time.Hour,
			RefreshExpiry: 168 * time.Hour,
		},
		Auth: config.AuthConfig{
			MaxLoginAttempts: 5,
			LoginWindow:      15 * time.Minute,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			GracefulTimeout: 30 * time.Second,
		},
		Storage: config.StorageConfig{
			Driver:         config.StorageLocal,
			MaxUploadBytes: 1 << 20,
		},
		Scheduler: config.SchedulerConfig{
			Enabled:          false,
			SnapshotInterval: time.Minute,
		},
	}
}
