package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	insecureSecretKey = "dev-secret-key-change-in-production"
	defaultDSN        = "host=localhost user=postgres password=postgres dbname=stackit port=5432 sslmode=disable"
)

type Config struct {
	Port         string
	SecretKey    string
	DatabaseURL  string
	SessionName  string
	TemplatesDir string
	StaticDir    string
	TagsFile     string // optional YAML seed for default tags
	CacheSize    int
	GinMode      string
	// NotifyUserID receives the "new question posted" notification.
	NotifyUserID uint
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}
	return FromEnv()
}

// FromEnv builds the config from the current environment only.
func FromEnv() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		SecretKey:    getEnv("SECRET_KEY", insecureSecretKey),
		DatabaseURL:  getEnv("DATABASE_URL", defaultDSN),
		SessionName:  getEnv("SESSION_NAME", "stackit_session"),
		TemplatesDir: getEnv("TEMPLATES_DIR", "./web/templates"),
		StaticDir:    getEnv("STATIC_DIR", "./web/static"),
		TagsFile:     getEnv("TAGS_FILE", ""),
		CacheSize:    getEnvAsInt("CACHE_SIZE", 500),
		GinMode:      getEnv("GIN_MODE", "debug"),
		NotifyUserID: notifyUserID(getEnvAsInt("NOTIFY_USER_ID", 1)),
	}

	if cfg.SecretKey == insecureSecretKey {
		log.Println("[CONFIG] SECRET_KEY not set, using insecure development key")
	}
	return cfg
}

// notifyUserID maps NOTIFY_USER_ID to a user id; 0 or a negative value
// disables the new-question notification.
func notifyUserID(id int) uint {
	if id <= 0 {
		log.Println("[CONFIG] NOTIFY_USER_ID <= 0, new-question notifications disabled")
		return 0
	}
	return uint(id)
}

// Validate rejects settings that must not reach a release build.
func (c *Config) Validate() error {
	if c.GinMode == gin.ReleaseMode && c.InsecureSecret() {
		return errors.New("SECRET_KEY must be set when GIN_MODE=release")
	}
	return nil
}

// InsecureSecret reports whether the development fallback key is in use.
func (c *Config) InsecureSecret() bool {
	return c.SecretKey == insecureSecretKey
}
