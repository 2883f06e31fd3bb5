package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	DocIntel DocIntelConfig
	LLM      LLMConfig
	Server   ServerConfig
	Pipeline PipelineConfig
}

// DocIntelConfig holds Azure Document Intelligence configuration
type DocIntelConfig struct {
	Endpoint     string
	APIKey       string
	APIVersion   string
	ModelID      string
	PollInterval time.Duration
	Timeout      time.Duration
}

// LLMConfig holds Azure OpenAI configuration
type LLMConfig struct {
	Endpoint    string
	APIKey      string
	APIVersion  string
	Deployment  string
	Temperature float32
	Timeout     time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr string
}

// PipelineConfig holds processing behavior flags
type PipelineConfig struct {
	Concurrency int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		DocIntel: DocIntelConfig{
			Endpoint:     getEnv("DOCUMENTINTELLIGENCE_ENDPOINT", ""),
			APIKey:       getEnv("DOCUMENTINTELLIGENCE_API_KEY", ""),
			APIVersion:   getEnv("DOCUMENTINTELLIGENCE_API_VERSION", "2023-07-31"),
			ModelID:      getEnv("DOCUMENTINTELLIGENCE_MODEL_ID", "prebuilt-layout"),
			PollInterval: getEnvAsDuration("DOCUMENTINTELLIGENCE_POLL_INTERVAL", 2*time.Second),
			Timeout:      getEnvAsDuration("DOCUMENTINTELLIGENCE_TIMEOUT", 120*time.Second),
		},
		LLM: LLMConfig{
			Endpoint:    getEnv("AZURE_OPENAI_ENDPOINT", ""),
			APIKey:      getEnv("AZURE_OPENAI_API_KEY", ""),
			APIVersion:  getEnv("AZURE_OPENAI_API_VERSION", "2024-06-01"),
			Deployment:  getEnv("AZURE_OPENAI_DEPLOYMENT", ""),
			Temperature: getEnvAsFloat32("AZURE_OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("AZURE_OPENAI_TIMEOUT", 60*time.Second),
		},
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		},
		Pipeline: PipelineConfig{
			Concurrency: getEnvAsInt("PIPELINE_CONCURRENCY", 1),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.DocIntel.Endpoint == "" {
		return NewAppError("CONFIG_ERROR", "DOCUMENTINTELLIGENCE_ENDPOINT is required", ErrInvalidInput)
	}
	if c.DocIntel.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "DOCUMENTINTELLIGENCE_API_KEY is required", ErrInvalidInput)
	}
	if c.LLM.Endpoint == "" {
		return NewAppError("CONFIG_ERROR", "AZURE_OPENAI_ENDPOINT is required", ErrInvalidInput)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "AZURE_OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.LLM.Deployment == "" {
		return NewAppError("CONFIG_ERROR", "AZURE_OPENAI_DEPLOYMENT is required", ErrInvalidInput)
	}
	return nil
}
