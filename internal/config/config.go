package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string // Application port
	DBUser         string // Database user
	DBPassword     string // Database password
	DBHost         string // Database host
	DBPort         string // Database port
	DBName         string // Database name
	JWTSecret      string // JWT secret key
	RedisAddr      string // Redis server address
	RedisPass      string // Redis password
	RedisDB        int    // Redis database number
	AdminEmail     string // Admin user to seed at startup (skipped when empty)
	AdminPassword  string // Password for the seeded admin user
	AllowPlaintext bool   // Accept legacy plaintext credential records at login
	IsProd         bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123" // Seed default, overridden in any real deployment
	}
	return &Config{
		AppPort:        os.Getenv("APP_PORT"),        // Application port
		DBUser:         os.Getenv("DB_USER"),         // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),     // Database password
		DBHost:         os.Getenv("DB_HOST"),         // Database host
		DBPort:         os.Getenv("DB_PORT"),         // Database port
		DBName:         os.Getenv("DB_NAME"),         // Database name
		JWTSecret:      os.Getenv("JWT_SECRET"),      // JWT secret key
		RedisAddr:      os.Getenv("REDIS_ADDR"),      // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),      // Redis password
		RedisDB:        redisDB,                      // Redis database number
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),     // Admin email to seed
		AdminPassword:  adminPassword,                // Admin password to seed
		AllowPlaintext: os.Getenv("ALLOW_PLAINTEXT_PASSWORDS") == "true", // Legacy plaintext fallback
		IsProd:         os.Getenv("IS_PROD") == "true", // Is production environment
	}
}

// DSN builds the MySQL Data Source Name from the DB settings
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}
