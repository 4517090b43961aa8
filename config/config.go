package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend selects which persistence backend the song store talks to.
const (
	BackendMySQL = "mysql"
	BackendREST  = "rest"
)

// Config stores the application configuration.
type Config struct {
	ServerAddr string
	WebAppDir  string // Path to the web application's UI files

	DBBackend  string // "mysql" or "rest"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Hosted REST table endpoint (PostgREST-style), used when DBBackend is "rest".
	RestURL    string
	RestAPIKey string

	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioBucket     string
	MinioRegion     string
	MinioUseSSL     bool
	MinioPublicBase string // Optional base URL for public object access

	FFprobePath string

	LogLevel string
	LogPath  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		WebAppDir:  getEnv("WEBAPP_DIR", filepath.Join("web", "ui")),

		DBBackend:  getEnv("DB_BACKEND", BackendMySQL),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"), // No hardcoded default for credentials
		DBName:     getEnv("DB_NAME", "songvault"),

		RestURL:    os.Getenv("REST_DB_URL"),
		RestAPIKey: os.Getenv("REST_DB_KEY"),

		MinioEndpoint:   os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:  os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:  os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:     getEnv("MINIO_BUCKET", "songvault"),
		MinioRegion:     getEnv("MINIO_REGION", "us-east-1"),
		MinioUseSSL:     getEnvBool("MINIO_USE_SSL", false),
		MinioPublicBase: os.Getenv("MINIO_PUBLIC_BASE"),

		FFprobePath: getEnv("FFPROBE_PATH", "ffprobe"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", ""),
	}
}

// Validate checks the fatal startup conditions: the persistence backend and
// the object storage both need an endpoint and a credential.
func (c *Config) Validate() error {
	switch c.DBBackend {
	case BackendMySQL:
		if c.DBHost == "" || c.DBPassword == "" {
			return fmt.Errorf("missing DB_HOST or DB_PASSWORD in environment")
		}
	case BackendREST:
		if c.RestURL == "" || c.RestAPIKey == "" {
			return fmt.Errorf("missing REST_DB_URL or REST_DB_KEY in environment")
		}
	default:
		return fmt.Errorf("unknown DB_BACKEND %q", c.DBBackend)
	}

	if c.MinioEndpoint == "" || c.MinioAccessKey == "" || c.MinioSecretKey == "" {
		return fmt.Errorf("missing MINIO_ENDPOINT, MINIO_ACCESS_KEY or MINIO_SECRET_KEY in environment")
	}
	return nil
}
