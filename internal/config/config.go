package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverOracle   = "oracle"
	DriverSQLite   = "sqlite"

	StorageLocal = "local"
	StorageMinio = "minio"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Server    ServerConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port int
}

type LogConfig struct {
	Level string // debug|info|warn|error, 비어 있으면 환경별 기본값
}

type DatabaseConfig struct {
	Driver          string // postgres|oracle|sqlite
	Host            string
	Port            int
	Name            string // postgres database / oracle service / sqlite file
	User            string
	Password        string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	IsAutoMigrate   bool // true: 테이블 재생성, false: 마이그레이션 비활성화
}

type JWTConfig struct {
	Secret        string
	Issuer        string
	Audience      string
	Expiry        time.Duration
	RefreshExpiry time.Duration
}

type AuthConfig struct {
	MaxLoginAttempts int
	LoginWindow      time.Duration
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
}

// RedisConfig is optional. An empty Addr disables token revocation and login throttling.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Driver         string // local|minio
	UploadDir      string
	MaxUploadBytes int64
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

type SchedulerConfig struct {
	Enabled          bool
	SnapshotInterval time.Duration
}

func Load(env string) (*Config, error) {
	if err := loadEnvFile(env); err != nil {
		return nil, fmt.Errorf("환경 변수 로드 실패: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "together-culture-api"),
			Env:  env,
			Port: getEnvAsInt("APP_PORT", 8080),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", ""),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:            getEnv("DB_HOST", ""),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", ""),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "1h"),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", "10m"),
			IsAutoMigrate:   getEnvAsBool("DB_AUTO_MIGRATE", false), // 기본값: false (안전)
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			Issuer:        getEnv("JWT_ISSUER", "together-culture-api"),
			Audience:      getEnv("JWT_AUDIENCE", "together-culture-web"),
			Expiry:        getEnvAsDuration("JWT_EXPIRY", "1h"),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", "168h"),
		},
		Auth: AuthConfig{
			MaxLoginAttempts: getEnvAsInt("AUTH_MAX_LOGIN_ATTEMPTS", 5),
			LoginWindow:      getEnvAsDuration("AUTH_LOGIN_WINDOW", "15m"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"*"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},
		Server: ServerConfig{
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", "30s"),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
			GracefulTimeout: getEnvAsDuration("GRACEFUL_TIMEOUT", "30s"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(getEnv("STORAGE_DRIVER", StorageLocal)),
			UploadDir:      getEnv("STORAGE_UPLOAD_DIR", filepath.Join("uploads", "documents")),
			MaxUploadBytes: getEnvAsInt64("STORAGE_MAX_UPLOAD_BYTES", 20<<20),
			MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
			MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
			MinioBucket:    getEnv("MINIO_BUCKET", "documents"),
			MinioUseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		},
		Scheduler: SchedulerConfig{
			Enabled:          getEnvAsBool("SCHEDULER_ENABLED", true),
			SnapshotInterval: getEnvAsDuration("SCHEDULER_SNAPSHOT_INTERVAL", "5m"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("환경 변수 검증 실패 : %w", err)
	}

	return cfg, nil
}

func loadEnvFile(env string) error {
	envFile := fmt.Sprintf(".env.%s", env)

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Warn("환경 변수 파일을 찾을 수 없습니다. 시스템 환경 변수를 사용합니다.",
			"file", envFile)
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("환경 변수 파일 로드 오류: %s: %w", envFile, err)
	}

	absPath, _ := filepath.Abs(envFile)
	slog.Info("환경 변수 파일 로드", "file", absPath)
	return nil
}

func (c *Config) Validate() error {
	var errors []string

	// App validation
	if c.App.Port < 1 || c.App.Port > 65535 {
		errors = append(errors, "유효하지 않은 포트 번호")
	}

	// Database validation
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Name == "" {
			errors = append(errors, "SQLite 파일 경로(DB_NAME)가 필요합니다")
		}
	case DriverPostgres, DriverOracle:
		if c.Database.Host == "" {
			errors = append(errors, "데이터베이스 Host가 필요합니다")
		}
		if c.Database.Name == "" {
			errors = append(errors, "데이터베이스 Name이 필요합니다")
		}
		if c.Database.User == "" {
			errors = append(errors, "데이터베이스 User가 필요합니다")
		}
		if c.Database.Password == "" {
			errors = append(errors, "데이터베이스 Password가 필요합니다")
		}
	default:
		errors = append(errors, fmt.Sprintf("지원하지 않는 DB_DRIVER: %s", c.Database.Driver))
	}

	// JWT validation
	if c.JWT.Secret == "" {
		errors = append(errors, "JWT Secret Key가 필요합니다")
	}
	if len(c.JWT.Secret) < 32 {
		errors = append(errors, "JWT Secret Key는 32자 이상이어야 합니다")
	}
	if c.JWT.Expiry <= 0 || c.JWT.RefreshExpiry <= c.JWT.Expiry {
		errors = append(errors, "JWT refresh 만료 시간은 access 만료 시간보다 길어야 합니다")
	}

	// Auth validation
	if c.Auth.MaxLoginAttempts < 1 || c.Auth.LoginWindow <= 0 {
		errors = append(errors, "AUTH_MAX_LOGIN_ATTEMPTS와 AUTH_LOGIN_WINDOW는 0보다 커야 합니다")
	}

	// Storage validation
	switch c.Storage.Driver {
	case StorageLocal:
		if c.Storage.UploadDir == "" {
			errors = append(errors, "STORAGE_UPLOAD_DIR가 필요합니다")
		}
	case StorageMinio:
		if c.Storage.MinioEndpoint == "" || c.Storage.MinioAccessKey == "" || c.Storage.MinioSecretKey == "" {
			errors = append(errors, "MinIO endpoint/access key/secret key가 필요합니다")
		}
	default:
		errors = append(errors, fmt.Sprintf("지원하지 않는 STORAGE_DRIVER: %s", c.Storage.Driver))
	}

	if c.Scheduler.Enabled && c.Scheduler.SnapshotInterval <= 0 {
		errors = append(errors, "SCHEDULER_SNAPSHOT_INTERVAL은 0보다 커야 합니다")
	}

	if len(errors) > 0 {
		return fmt.Errorf("유효성 검사 오류: %s", strings.Join(errors, ", "))
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "local" || c.App.Env == "dev"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "prod" || c.App.Env == "production"
}

// HasRedis reports whether a redis address is configured.
func (c *Config) HasRedis() bool {
	return c.Redis.Addr != ""
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if defaultDuration, err := time.ParseDuration(defaultValue); err == nil {
		return defaultDuration
	}
	return 0
}
