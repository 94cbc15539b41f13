package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ImageStorageBlob   = "blob"
	ImageStorageInline = "inline"
)

type Config struct {
	// Generative AI provider
	GenAIAPIBaseURL       string
	GenAIDefaultImageKey  string
	GenAIDefaultVisionKey string
	GenAIDefaultVideoKey  string
	GenAIImageModel       string
	GenAIVisionModel      string
	GenAIVideoModel       string

	// Supabase
	SupabaseURL           string
	SupabaseServiceKey    string
	SupabaseJWTSecret     string
	SupabaseStorageBucket string

	// Database
	DatabaseURL string

	// Redis (optional, shared upload cache)
	RedisURL        string
	UploadCacheSize int
	UploadCacheTTL  time.Duration

	// Cards
	ImageStorageMode       string
	VideoGenerationTimeout time.Duration
	VideoPollInterval      time.Duration
	DownloadAllowedHosts   []string

	// Server
	Port                string
	Environment         string
	BaseURL             string
	LogLevel            string
	CORSAllowedOrigins  []string
	MaxRequestBodyBytes int64
}

// Load reads the configuration from the environment. A .env file in the
// working directory is honoured when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GenAIAPIBaseURL:       getEnv("GENAI_API_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/"),
		GenAIDefaultImageKey:  getEnv("GENAI_DEFAULT_IMAGE_KEY", ""),
		GenAIDefaultVisionKey: getEnv("GENAI_DEFAULT_VISION_KEY", ""),
		GenAIDefaultVideoKey:  getEnv("GENAI_DEFAULT_VIDEO_KEY", ""),
		GenAIImageModel:       getEnv("GENAI_IMAGE_MODEL", "gemini-2.0-flash-preview-image-generation"),
		GenAIVisionModel:      getEnv("GENAI_VISION_MODEL", "gemini-2.0-flash"),
		GenAIVideoModel:       getEnv("GENAI_VIDEO_MODEL", "veo-2.0-generate-001"),

		SupabaseURL:           getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:    getEnv("SUPABASE_SERVICE_ROLE_KEY", getEnv("SUPABASE_PUBLISHABLE_KEY", "")),
		SupabaseJWTSecret:     getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket: getEnv("SUPABASE_STORAGE_BUCKET", "card-assets"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:        getEnv("REDIS_URL", ""),
		UploadCacheSize: getEnvInt("UPLOAD_CACHE_SIZE", 512),
		UploadCacheTTL:  getEnvDuration("UPLOAD_CACHE_TTL", 24*time.Hour),

		ImageStorageMode:       strings.ToLower(getEnv("IMAGE_STORAGE_MODE", ImageStorageBlob)),
		VideoGenerationTimeout: getEnvDuration("VIDEO_GENERATION_TIMEOUT", 10*time.Minute),
		VideoPollInterval:      getEnvDuration("VIDEO_POLL_INTERVAL", 10*time.Second),
		DownloadAllowedHosts:   getEnvList("DOWNLOAD_ALLOWED_HOSTS"),

		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		BaseURL:             getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS"),
		MaxRequestBodyBytes: int64(getEnvInt("MAX_REQUEST_BODY_BYTES", 25<<20)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if _, err := url.ParseRequestURI(c.SupabaseURL); err != nil {
		return fmt.Errorf("SUPABASE_URL is not a valid url: %w", err)
	}
	if c.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.ImageStorageMode != ImageStorageBlob && c.ImageStorageMode != ImageStorageInline {
		return fmt.Errorf("IMAGE_STORAGE_MODE must be %q or %q", ImageStorageBlob, ImageStorageInline)
	}
	if c.VideoGenerationTimeout <= 0 {
		return fmt.Errorf("VIDEO_GENERATION_TIMEOUT must be positive")
	}
	return nil
}

// AllowedDownloadHosts returns the download proxy allow-list. The Supabase
// host is always included.
func (c *Config) AllowedDownloadHosts() []string {
	hosts := make([]string, 0, len(c.DownloadAllowedHosts)+1)
	if u, err := url.Parse(c.SupabaseURL); err == nil && u.Hostname() != "" {
		hosts = append(hosts, strings.ToLower(u.Hostname()))
	}
	for _, h := range c.DownloadAllowedHosts {
		hosts = append(hosts, strings.ToLower(h))
	}
	return hosts
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
