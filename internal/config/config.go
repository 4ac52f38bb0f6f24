package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/convective-diagnostics/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// AnalysisTunablesPath points at an optional YAML file overriding the
	// default analysis thresholds.
	AnalysisTunablesPath string
	Analysis             domain.AnalysisConfig
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first when
// present; real environment variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	flushInterval, err := parseDuration("BATCH_FLUSH_INTERVAL", "2s")
	if err != nil {
		return nil, err
	}
	batchSize, err := parsePositiveInt("BATCH_SIZE", 50)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic: envOrDefault("KAFKA_SOURCE_TOPIC", "model-soundings"),
		KafkaSinkTopic:   envOrDefault("KAFKA_SINK_TOPIC", "convective-diagnostics"),
		KafkaGroupID:     envOrDefault("KAFKA_GROUP_ID", "convective-diagnostics"),
		HTTPAddr:         envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,

		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		AnalysisTunablesPath: os.Getenv("ANALYSIS_TUNABLES"),
	}

	cfg.Analysis, err = loadAnalysisTunables(cfg.AnalysisTunablesPath)
	if err != nil {
		return nil, err
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

// loadAnalysisTunables starts from the published defaults and overlays the
// YAML file when a path is configured. Missing keys keep their defaults.
func loadAnalysisTunables(path string) (domain.AnalysisConfig, error) {
	ac := domain.DefaultAnalysisConfig()
	if path == "" {
		return ac, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ac, fmt.Errorf("reading analysis tunables: %w", err)
	}
	if err := yaml.Unmarshal(data, &ac); err != nil {
		return ac, fmt.Errorf("parsing analysis tunables: %w", err)
	}
	if ac.PressureStepHPa <= 0 || ac.PressureStepHPa > 50 {
		return ac, fmt.Errorf("analysis tunables: pressure_step_hpa %.1f out of range (0, 50]", ac.PressureStepHPa)
	}
	if ac.MixedLayerDepthHPa <= 0 || ac.MostUnstableDepthHPa <= 0 || ac.BunkersDepthM <= 0 {
		return ac, errors.New("analysis tunables: layer depths must be positive")
	}
	if ac.BoundaryGradientThreshold <= 0 {
		return ac, errors.New("analysis tunables: boundary_gradient_threshold must be positive")
	}
	return ac, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
