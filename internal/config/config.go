package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort           string // Application port
	DBUser            string // Database user
	DBPassword        string // Database password
	DBHost            string // Database host
	DBPort            string // Database port
	DBName            string // Database name
	QRSecret          string // Secret key for signing gift card QR claims
	RedisAddr         string // Redis server address
	RedisPass         string // Redis password
	RedisDB           int    // Redis database number
	SettlementDelayMs int    // Simulated settlement delay in milliseconds
	IsProd            bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	settlementDelay, err := strconv.Atoi(os.Getenv("SETTLEMENT_DELAY_MS"))
	if err != nil || settlementDelay < 0 {
		settlementDelay = 500 // Default matches the original demo delay
	}
	return &Config{
		AppPort:           os.Getenv("APP_PORT"),          // Application port
		DBUser:            os.Getenv("DB_USER"),           // Database user
		DBPassword:        os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:            os.Getenv("DB_HOST"),           // Database host
		DBPort:            os.Getenv("DB_PORT"),           // Database port
		DBName:            os.Getenv("DB_NAME"),           // Database name
		QRSecret:          os.Getenv("QR_SECRET"),         // QR claim signing secret
		RedisAddr:         os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:         os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:           redisDB,                        // Redis database number
		SettlementDelayMs: settlementDelay,                // Simulated settlement delay
		IsProd:            os.Getenv("IS_PROD") == "true", // Is production environment
	}
}
