package azure

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the Azure Document Intelligence client.
type Config struct {
	Endpoint     string        // e.g. https://myresource.cognitiveservices.azure.com
	APIKey       string        // if empty, falls back to env DOCUMENTINTELLIGENCE_API_KEY
	APIVersion   string        // default 2023-07-31
	ModelID      string        // default prebuilt-layout
	PollInterval time.Duration // delay between result polls
	Timeout      time.Duration // overall analysis deadline
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("DOCUMENTINTELLIGENCE_API_KEY")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2023-07-31"
	}
	if cfg.ModelID == "" {
		cfg.ModelID = "prebuilt-layout"
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}
