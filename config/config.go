package config

import "os"

// Config holds all environment-driven settings, read once at startup.
type Config struct {
	DatabaseURL      string
	Port             string
	JWTSecret        string
	JWTRefreshSecret string

	GroqAPIURL string
	GroqAPIKey string
	GroqModel  string

	WeatherAPIURL string
	WeatherAPIKey string
}

// Load reads the configuration from environment variables, applying
// defaults where a value is optional.
func Load() *Config {
	return &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Port:             getEnv("PORT", "8080"),
		JWTSecret:        getEnv("JWT_SECRET", "fallback-secret"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "fallback-refresh-secret"),
		GroqAPIURL:       getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		GroqModel:        getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		WeatherAPIURL:    os.Getenv("WEATHER_API_URL"),
		WeatherAPIKey:    os.Getenv("WEATHER_API_KEY"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
