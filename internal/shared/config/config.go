package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configPathEnv = "PREP_CONFIG"

// Config holds application configuration.
type Config struct {
	Env               string        `yaml:"env"`
	Port              string        `yaml:"port"`
	CORSAllowOrigin   []string      `yaml:"corsAllowOrigins"`
	DatabaseURL       string        `yaml:"databaseUrl"`
	ObjectStoreType   string        `yaml:"objectStore"`
	LocalStoreDir     string        `yaml:"localStoreDir"`
	AWSRegion         string        `yaml:"awsRegion"`
	S3Bucket          string        `yaml:"s3Bucket"`
	S3Prefix          string        `yaml:"s3Prefix"`
	SSEKMSKeyID       string        `yaml:"sseKmsKeyId"`
	HistoryLimit      int           `yaml:"historyLimit"`
	AnalyzeRatePerSec float64       `yaml:"analyzeRatePerSec"`
	AnalyzeBurst      int           `yaml:"analyzeBurst"`
	FetchTimeout      time.Duration `yaml:"fetchTimeout"`
	MaxUploadBytes    int64         `yaml:"maxUploadBytes"`
	LogLevel          string        `yaml:"logLevel"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Env:               "dev",
		Port:              "8080",
		CORSAllowOrigin:   []string{"http://localhost:5173"},
		ObjectStoreType:   "local",
		LocalStoreDir:     "./data",
		HistoryLimit:      50,
		AnalyzeRatePerSec: 2,
		AnalyzeBurst:      10,
		FetchTimeout:      15 * time.Second,
		MaxUploadBytes:    10 << 20,
		LogLevel:          "info",
	}
}

// Load reads configuration from .env files, an optional YAML file named by
// PREP_CONFIG, and environment variables, in increasing precedence.
func Load() Config {
	// Best-effort load of local env files for dev convenience. Existing
	// variables are never overwritten.
	for _, path := range []string{".env", "cmd/.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				log.Printf("config: cannot load %s: %v", path, err)
			}
		}
	}

	cfg := Default()
	if path := os.Getenv(configPathEnv); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			log.Printf("config: %v (falling back to defaults)", err)
		}
	}
	cfg.applyEnvOverrides()
	cfg.normalize()

	if cfg.Env == "production" && cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}
	return cfg
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// Unmarshalling onto the defaults keeps every field the file omits.
	return yaml.Unmarshal(raw, c)
}

func (c *Config) applyEnvOverrides() {
	c.Env = getEnv("ENV", c.Env)
	c.Port = getEnv("PORT", c.Port)
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		c.CORSAllowOrigin = splitAndTrim(v)
	}
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.ObjectStoreType = getEnv("OBJECT_STORE", c.ObjectStoreType)
	c.LocalStoreDir = getEnv("LOCAL_STORE_DIR", c.LocalStoreDir)
	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.S3Bucket = getEnv("S3_BUCKET", c.S3Bucket)
	c.S3Prefix = getEnv("S3_PREFIX", c.S3Prefix)
	c.SSEKMSKeyID = getEnv("SSE_KMS_KEY_ID", c.SSEKMSKeyID)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.HistoryLimit = getEnvInt("HISTORY_LIMIT", c.HistoryLimit)
	c.AnalyzeBurst = getEnvInt("ANALYZE_BURST", c.AnalyzeBurst)
	c.MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_BYTES", int(c.MaxUploadBytes)))
	if v := os.Getenv("ANALYZE_RATE_PER_SEC"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.AnalyzeRatePerSec = f
		} else {
			log.Printf("config: ANALYZE_RATE_PER_SEC invalid float: %v", err)
		}
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.FetchTimeout = d
		} else {
			log.Printf("config: FETCH_TIMEOUT invalid duration: %v", err)
		}
	}
}

func (c *Config) normalize() {
	c.Env = normalizeEnv(c.Env)
	c.ObjectStoreType = normalizeStoreType(c.ObjectStoreType)
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = Default().HistoryLimit
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: %s invalid int: %v", key, err)
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
