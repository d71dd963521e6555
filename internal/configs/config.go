package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Поддерживаемые драйверы хранилища
const (
	DriverMongoDB  = "mongodb"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type DBconfig struct {
	URL string
}

type RESTconfig struct {
	PORT               string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

type RabbitMQConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

type ImportConfig struct {
	File      string
	BatchSize int
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName       string
	StorageDriver string
	Mongo         MongoConfig
	Database      DBconfig
	Rest          RESTconfig
	RabbitMQ      RabbitMQConfig
	FluentBit     FluentBitConfig
	StdoutLogger  StdoutLogConfig
	Import        ImportConfig
}

// LoadConfig загружает конфигурацию из .env (если он есть) и переменных окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		// без .env работаем на переменных окружения процесса
		log.Printf("Info: Could not load .env file (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "quickrentals")

	cfg.StorageDriver = strings.ToLower(getEnvAsString("STORAGE_DRIVER", DriverMongoDB))
	switch cfg.StorageDriver {
	case DriverMongoDB:
		cfg.Mongo.URI = os.Getenv("MONGODB_URI")
		if cfg.Mongo.URI == "" {
			return nil, fmt.Errorf("MONGODB_URI environment variable is required")
		}
	case DriverPostgres:
		cfg.Database.URL = os.Getenv("DATABASE_URL")
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required")
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	cfg.Mongo.Database = getEnvAsString("DB_NAME", "quickrentals")
	cfg.Mongo.Collection = getEnvAsString("MONGODB_COLLECTION", "listings")

	cfg.Rest.PORT = getEnvAsString("PORT", "3000")
	cfg.Rest.CORSAllowedOrigins = getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"})
	cfg.Rest.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second)

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
	}
	cfg.RabbitMQ.Exchange = getEnvAsString("RABBITMQ_EXCHANGE", "listings_exchange")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	cfg.Import.File = getEnvAsString("IMPORT_FILE", "./airbnb_with_photos.json")
	cfg.Import.BatchSize = getEnvAsInt("IMPORT_BATCH_SIZE", 100)
	if cfg.Import.BatchSize <= 0 {
		log.Printf("Warning: IMPORT_BATCH_SIZE must be positive, got %d. Using default value: 100\n", cfg.Import.BatchSize)
		cfg.Import.BatchSize = 100
	}

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsSlice читает список через запятую
func getEnvAsSlice(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
