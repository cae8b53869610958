package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	LogLevel                  string
	JWTSecret                 string
	JWTRefreshSecret          string
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
	AppURL                    string
	UploadDir                 string
	Database                  DatabaseConfig
	Redis                     RedisConfig
	Mailer                    MailerConfig
	RateLimit                 RateLimitConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Dialect  string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// RedisConfig holds the background queue connection
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	QueuePrefix string
}

// MailerConfig holds email service configuration
type MailerConfig struct {
	Host        string
	Port        string
	DefaultFrom string
}

// RateLimitConfig limits session requests per client IP
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dbConfig := DatabaseConfig{
		Dialect:  getEnv("DB_DIALECT", "mysql"),
		Host:     getEnv("DB_HOST", "localhost"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "booking"),
	}

	switch dbConfig.Dialect {
	case "mysql":
		dbConfig.Port = getEnv("DB_PORT", "3306")
		dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)
	case "postgres":
		dbConfig.Port = getEnv("DB_PORT", "5432")
		dbConfig.DSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			dbConfig.Host, dbConfig.Port, dbConfig.Username, dbConfig.Password, dbConfig.Name,
			getEnv("DB_SSLMODE", "disable"))
	default:
		return nil, fmt.Errorf("invalid DB_DIALECT %q: want mysql or postgres", dbConfig.Dialect)
	}
	if dsn, ok := os.LookupEnv("DATABASE_URL"); ok && dsn != "" {
		dbConfig.DSN = dsn
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	redisConfig := RedisConfig{
		Addr:        getEnv("REDIS_ADDR", "localhost:6379"),
		Password:    getEnv("REDIS_PASSWORD", ""),
		DB:          redisDB,
		QueuePrefix: getEnv("QUEUE_PREFIX", "booking:jobs"),
	}

	mailerConfig := MailerConfig{
		Host:        getEnv("MAIL_HOST", "localhost"),
		Port:        getEnv("MAIL_PORT", "1025"),
		DefaultFrom: getEnv("MAIL_FROM", "Equipe Booking <noreply@booking.local>"),
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	appURL := getEnv("APP_URL", "http://localhost:3333")

	return &Config{
		Port:                      getEnv("PORT", "3333"),
		Origin:                    getEnv("ORIGIN", "http://localhost:3000"),
		Environment:               getEnv("APP_ENV", "development"),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
		AppURL:                    appURL,
		UploadDir:                 getEnv("UPLOAD_DIR", "tmp/uploads"),
		Database:                  dbConfig,
		Redis:                     redisConfig,
		Mailer:                    mailerConfig,
		RateLimit:                 RateLimitConfig{RPS: rps, Burst: burst},
	}, nil
}

// FilesURL is the public prefix of uploaded files.
func (c *Config) FilesURL() string {
	return c.AppURL + "/files"
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
