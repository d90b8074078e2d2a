package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string `yaml:"api_port" validate:"required"`
	LogLevel string `yaml:"log_level"`

	// postgres://... or sqlite://path. The CLI defaults to a local sqlite
	// file so it works without any services running.
	DatabaseDSN string `yaml:"database_dsn" validate:"required"`

	NATSURL     string `yaml:"nats_url" validate:"required"`
	NATSSubject string `yaml:"nats_subject" validate:"required"`

	StoragePath string `yaml:"storage_path" validate:"required"`
	CachePath   string `yaml:"cache_path"`

	MaxUploadBytes    int64    `yaml:"max_upload_bytes" validate:"gt=0"`
	AllowedExtensions []string `yaml:"allowed_extensions" validate:"min=1"`

	OCREnabled        bool   `yaml:"ocr_enabled"`
	TesseractPath     string `yaml:"tesseract_path"`
	OCRTimeoutSeconds int    `yaml:"ocr_timeout_seconds" validate:"gt=0"`

	ConfidenceThreshold float64 `yaml:"confidence_threshold" validate:"gte=0,lte=1"`

	APIRateLimitRPS   int    `yaml:"api_rate_limit_rps" validate:"gt=0"`
	APIRateLimitBurst int    `yaml:"api_rate_limit_burst" validate:"gt=0"`
	WorkerMetricsPort string `yaml:"worker_metrics_port" validate:"required"`
}

func defaults() Config {
	return Config{
		APIPort:  "8080",
		LogLevel: "info",

		DatabaseDSN: "sqlite://./data/autodoc.db",

		NATSURL:     "nats://localhost:4222",
		NATSSubject: "documents.process",

		StoragePath: "./data/storage",
		CachePath:   "./data/cache.db",

		MaxUploadBytes:    10 << 20,
		AllowedExtensions: []string{".pdf", ".png", ".jpg", ".jpeg", ".tiff", ".bmp", ".txt"},

		OCREnabled:        true,
		TesseractPath:     "tesseract",
		OCRTimeoutSeconds: 30,

		ConfidenceThreshold: 0.7,

		APIRateLimitRPS:   20,
		APIRateLimitBurst: 40,
		WorkerMetricsPort: "9090",
	}
}

// Load builds the configuration from defaults, an optional YAML file
// (AUTODOC_CONFIG, falling back to ./autodoc.yaml) and environment variable
// overrides, in that order. Env always wins over file.
func Load() (Config, error) {
	cfg := defaults()

	if err := overlayFile(&cfg); err != nil {
		return Config{}, err
	}
	overlayEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func overlayFile(cfg *Config) error {
	path := os.Getenv("AUTODOC_CONFIG")
	explicit := path != ""
	if path == "" {
		path = "autodoc.yaml"
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		if explicit {
			return fmt.Errorf("read config file %s: %w", path, err)
		}
		return nil
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func overlayEnv(cfg *Config) {
	cfg.APIPort = envStr("API_PORT", cfg.APIPort)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)

	cfg.DatabaseDSN = envStr("DATABASE_DSN", cfg.DatabaseDSN)

	cfg.NATSURL = envStr("NATS_URL", cfg.NATSURL)
	cfg.NATSSubject = envStr("NATS_SUBJECT", cfg.NATSSubject)

	cfg.StoragePath = envStr("STORAGE_PATH", cfg.StoragePath)
	cfg.CachePath = envStr("CACHE_PATH", cfg.CachePath)

	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	if v := os.Getenv("ALLOWED_EXTENSIONS"); v != "" {
		cfg.AllowedExtensions = splitList(v)
	}

	cfg.OCREnabled = envBool("OCR_ENABLED", cfg.OCREnabled)
	cfg.TesseractPath = envStr("TESSERACT_PATH", cfg.TesseractPath)
	cfg.OCRTimeoutSeconds = envInt("OCR_TIMEOUT_SECONDS", cfg.OCRTimeoutSeconds)

	cfg.ConfidenceThreshold = envFloat("CONFIDENCE_THRESHOLD", cfg.ConfidenceThreshold)

	cfg.APIRateLimitRPS = envInt("API_RATE_LIMIT_RPS", cfg.APIRateLimitRPS)
	cfg.APIRateLimitBurst = envInt("API_RATE_LIMIT_BURST", cfg.APIRateLimitBurst)
	cfg.WorkerMetricsPort = envStr("WORKER_METRICS_PORT", cfg.WorkerMetricsPort)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		out = append(out, strings.ToLower(p))
	}
	return out
}

func envStr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
