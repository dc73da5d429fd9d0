package internal

import (
	"os"

	"gopkg.in/yaml.v3"

	"reponotify/pkg/notify"
	"reponotify/pkg/storage/subscriptions"
)

// Config represents the application configuration.
type Config struct {
	// Server holds server-specific configuration.
	Server struct {
		Port           int    `yaml:"port"`
		ReadTimeoutMS  int64  `yaml:"read_timeout_ms"`
		WriteTimeoutMS int64  `yaml:"write_timeout_ms"`
		IdleTimeoutMS  int64  `yaml:"idle_timeout_ms"`
		ReadHeaderMS   int64  `yaml:"read_header_timeout_ms"`
		MetricsEnabled bool   `yaml:"metrics_enabled"`
		MetricsPath    string `yaml:"metrics_path"`
	} `yaml:"server"`
	// Webhook configures the inbound GitHub endpoint.
	Webhook struct {
		Path          string `yaml:"path"`
		MaxBodyBytes  int64  `yaml:"max_body_bytes"`
		SendTimeoutMS int64  `yaml:"send_timeout_ms"`
	} `yaml:"webhook"`
	// API configures the subscription management endpoint.
	API struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"api"`
	// Storage configures the subscription store.
	Storage subscriptions.Config `yaml:"storage"`
	// Sink configures the outbound notification drivers.
	Sink notify.SinkConfig `yaml:"sink"`
}

// LoadConfig loads the application configuration from a YAML file. It expands
// environment variables and applies default values.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return cfg, err
	}

	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeoutMS == 0 {
		cfg.Server.ReadTimeoutMS = 5000
	}
	if cfg.Server.WriteTimeoutMS == 0 {
		cfg.Server.WriteTimeoutMS = 10000
	}
	if cfg.Server.IdleTimeoutMS == 0 {
		cfg.Server.IdleTimeoutMS = 60000
	}
	if cfg.Server.ReadHeaderMS == 0 {
		cfg.Server.ReadHeaderMS = 5000
	}
	if cfg.Server.MetricsPath == "" {
		cfg.Server.MetricsPath = "/metrics"
	}
	if cfg.Webhook.Path == "" {
		cfg.Webhook.Path = "/webhooks/github"
	}
	if cfg.Webhook.MaxBodyBytes == 0 {
		cfg.Webhook.MaxBodyBytes = 5 << 20
	}
	if cfg.Webhook.SendTimeoutMS == 0 {
		cfg.Webhook.SendTimeoutMS = 10000
	}
	if cfg.API.Path == "" {
		cfg.API.Path = "/api/subscriptions"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "sqlite"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "file:reponotify.db"
	}
	if cfg.Sink.Driver == "" {
		cfg.Sink.Driver = "gochannel"
	}
	if cfg.Sink.GoChannel.OutputChannelBuffer == 0 {
		cfg.Sink.GoChannel.OutputChannelBuffer = 64
	}
	if cfg.Sink.HTTP.Mode == "" {
		cfg.Sink.HTTP.Mode = "topic_url"
	}
	if cfg.Sink.RiverQueue.Table == "" {
		cfg.Sink.RiverQueue.Table = "river_job"
	}
	if cfg.Sink.RiverQueue.Queue == "" {
		cfg.Sink.RiverQueue.Queue = "default"
	}
	if cfg.Sink.RiverQueue.Kind == "" {
		cfg.Sink.RiverQueue.Kind = "reponotify.notification"
	}
	if cfg.Sink.RiverQueue.MaxAttempts == 0 {
		cfg.Sink.RiverQueue.MaxAttempts = 25
	}
}
