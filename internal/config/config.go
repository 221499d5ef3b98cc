package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig   `yaml:"server"`
	Transport string         `yaml:"transport"`
	DB        DBConfig       `yaml:"db"`
	Log       LogConfig      `yaml:"log"`
	LLM       LLMConfig      `yaml:"llm"`
	Pipeline  PipelineConfig `yaml:"pipeline"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// LLMConfig configures the remote model clients. An empty BaseURL targets
// the default OpenAI endpoint.
type LLMConfig struct {
	BaseURL         string `yaml:"base_url"`
	APIKey          string `yaml:"api_key"`
	ExtractionModel string `yaml:"extraction_model"`
	CoachingModel   string `yaml:"coaching_model"`
}

// PipelineConfig tunes the coaching orchestrator.
type PipelineConfig struct {
	TimeoutMS         int     `yaml:"timeout_ms"`
	MissionTimeoutMS  int     `yaml:"mission_timeout_ms"`
	AnalysisTimeoutMS int     `yaml:"analysis_timeout_ms"`
	ProbeTimeoutMS    int     `yaml:"probe_timeout_ms"`
	BatchSize         int     `yaml:"batch_size"`
	SaveThreshold     float64 `yaml:"save_threshold"`
}

// Timeout returns the per-call LLM timeout as a duration.
func (p PipelineConfig) Timeout() time.Duration { return time.Duration(p.TimeoutMS) * time.Millisecond }

// MissionTimeout returns the daily mission timeout as a duration.
func (p PipelineConfig) MissionTimeout() time.Duration {
	return time.Duration(p.MissionTimeoutMS) * time.Millisecond
}

// AnalysisTimeout returns the pattern analysis timeout as a duration.
func (p PipelineConfig) AnalysisTimeout() time.Duration {
	return time.Duration(p.AnalysisTimeoutMS) * time.Millisecond
}

// ProbeTimeout returns the connectivity probe timeout as a duration.
func (p PipelineConfig) ProbeTimeout() time.Duration {
	return time.Duration(p.ProbeTimeoutMS) * time.Millisecond
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: "stdio",
		DB: DBConfig{
			Path: "lifelog.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		LLM: LLMConfig{
			ExtractionModel: "gpt-4o-mini",
			CoachingModel:   "gpt-4o-mini",
		},
		Pipeline: PipelineConfig{
			TimeoutMS:         5000,
			MissionTimeoutMS:  3000,
			AnalysisTimeoutMS: 10000,
			ProbeTimeoutMS:    2000,
			BatchSize:         5,
			SaveThreshold:     0.6,
		},
	}

	if path := os.Getenv("LIFELOG_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("LIFELOG_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("LIFELOG_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LIFELOG_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if transport := os.Getenv("LIFELOG_TRANSPORT"); transport != "" {
		cfg.Transport = transport
	}
	if dbPath := os.Getenv("LIFELOG_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("LIFELOG_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if baseURL := os.Getenv("LIFELOG_LLM_BASE_URL"); baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}
	if apiKey := os.Getenv("LIFELOG_LLM_API_KEY"); apiKey != "" {
		cfg.LLM.APIKey = apiKey
	}
	if model := os.Getenv("LIFELOG_LLM_EXTRACTION_MODEL"); model != "" {
		cfg.LLM.ExtractionModel = model
	}
	if model := os.Getenv("LIFELOG_LLM_COACHING_MODEL"); model != "" {
		cfg.LLM.CoachingModel = model
	}

	if err := overrideInt("LIFELOG_LLM_TIMEOUT_MS", &cfg.Pipeline.TimeoutMS); err != nil {
		return Config{}, err
	}
	if err := overrideInt("LIFELOG_MISSION_TIMEOUT_MS", &cfg.Pipeline.MissionTimeoutMS); err != nil {
		return Config{}, err
	}
	if err := overrideInt("LIFELOG_ANALYSIS_TIMEOUT_MS", &cfg.Pipeline.AnalysisTimeoutMS); err != nil {
		return Config{}, err
	}
	if err := overrideInt("LIFELOG_PROBE_TIMEOUT_MS", &cfg.Pipeline.ProbeTimeoutMS); err != nil {
		return Config{}, err
	}
	if err := overrideInt("LIFELOG_BATCH_SIZE", &cfg.Pipeline.BatchSize); err != nil {
		return Config{}, err
	}
	if thresholdStr := os.Getenv("LIFELOG_SAVE_THRESHOLD"); thresholdStr != "" {
		threshold, err := strconv.ParseFloat(thresholdStr, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LIFELOG_SAVE_THRESHOLD: %w", err)
		}
		cfg.Pipeline.SaveThreshold = threshold
	}

	return cfg, nil
}

func overrideInt(env string, target *int) error {
	value := os.Getenv(env)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", env, err)
	}
	*target = parsed
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
