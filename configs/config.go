package config

import (
	"os"
	"strings"
	"time"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Config struct {
	Port                  string
	Environment           string
	LogLevel              string
	InstagramClientID     string
	InstagramClientSecret string
	InstagramRedirectURI  string
	InstagramAPIBase      string
	InstagramGraphBase    string
	GoogleClientID        string
	GoogleClientSecret    string
	GoogleRedirectURI     string
	PostgresURI           string
	LocalDBPath           string
	RedisURI              string
	FrontendURL           string
	R2                    R2
	SecretKey             string
	CookieName            string
	GeminiAPIKey          string
	GeminiModel           string
	HTTPClientTimeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Port:                  getEnv("PORT", "3000"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		InstagramClientID:     getEnv("INSTAGRAM_CLIENT_ID", ""),
		InstagramClientSecret: getEnv("INSTAGRAM_CLIENT_SECRET", ""),
		InstagramRedirectURI:  getEnv("INSTAGRAM_REDIRECT_URI", ""),
		InstagramAPIBase:      getEnv("INSTAGRAM_API_BASE", "https://api.instagram.com"),
		InstagramGraphBase:    getEnv("INSTAGRAM_GRAPH_BASE", "https://graph.instagram.com"),
		GoogleClientID:        getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:    getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:     getEnv("GOOGLE_REDIRECT_URI", "http://localhost:3000/login/callback"),
		PostgresURI:           getEnv("POSTGRES_URI", ""),
		LocalDBPath:           getEnv("LOCAL_DB_PATH", "database.json"),
		RedisURI:              getEnv("REDIS_URI", ""),
		FrontendURL:           strings.TrimRight(getEnv("FRONTEND_URL", "https://cominiti-frontend.vercel.app"), "/"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  strings.TrimRight(getEnv("R2_PUBLIC_URL", ""), "/"),
		},
		SecretKey:         getEnv("SECRET_KEY", ""),
		CookieName:        getEnv("COOKIE_NAME", "cominiti_session"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-pro"),
		HTTPClientTimeout: getDuration("HTTP_CLIENT_TIMEOUT", 15*time.Second),
	}
}

// UseLocalDB reports whether repositories should be served by the flat-file store.
func (c Config) UseLocalDB() bool {
	return c.PostgresURI == ""
}

func (c Config) R2Enabled() bool {
	return c.R2.AccountID != "" && c.R2.AccessKey != "" && c.R2.BucketName != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
