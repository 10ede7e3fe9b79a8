package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port          int              `json:"port"`
	JWTSecret     string           `json:"jwt_secret"`
	JWTTTLHours   int              `json:"jwt_ttl_hours"`
	LogConfig     logger.LogConfig `json:"log_config"`
	Database      DatabaseConfig   `json:"database"`
	AI            AIConfig         `json:"ai"`
	Pipeline      PipelineConfig   `json:"pipeline"`
	FileStore     FileStoreConfig  `json:"file_store"`
	Jobs          JobsConfig       `json:"jobs"`
	CORSAllowlist []string         `json:"cors_allowlist"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

// AIGeneratorConfig selects one provider entry. Entries are tried in order,
// so a hosted provider followed by a local Ollama entry gives the hosted
// service a local fallback.
type AIGeneratorConfig struct {
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
	Data     interface{} `json:"data"`
}

type AIConfig struct {
	Generators     []AIGeneratorConfig `json:"generators"`
	TimeoutSeconds int                 `json:"timeout_seconds"`
	MaxInputChars  int                 `json:"max_input_chars"`
}

type PipelineConfig struct {
	// ChunkDelayMS is the courtesy pause between sequential per-chunk calls.
	ChunkDelayMS int `json:"chunk_delay_ms"`
	// OnChunkFailure: "skip" keeps going when one chunk yields nothing,
	// "abort" fails the whole summarization.
	OnChunkFailure string `json:"on_chunk_failure"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type JobsConfig struct {
	SummaryBackfillSpec  string `json:"summary_backfill_spec"`
	SummaryBackfillDelay int64  `json:"summary_backfill_delay_seconds"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 60
	}
	if cfg.Pipeline.ChunkDelayMS == 0 {
		cfg.Pipeline.ChunkDelayMS = 300
	}
	switch cfg.Pipeline.OnChunkFailure {
	case "":
		cfg.Pipeline.OnChunkFailure = "skip"
	case "skip", "abort":
	default:
		return nil, fmt.Errorf("pipeline.on_chunk_failure must be skip or abort")
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
	}
	if cfg.Jobs.SummaryBackfillSpec == "" {
		cfg.Jobs.SummaryBackfillSpec = "*/5 * * * *"
	}
	if cfg.Jobs.SummaryBackfillDelay == 0 {
		cfg.Jobs.SummaryBackfillDelay = 600
	}
	return &cfg, nil
}
