package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const minimalYAML = `
environment: test
models:
  postgres_dsn: "host=localhost user=app dbname=stockpilot"
kafka:
  brokers: ["localhost:9092"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8000 {
		t.Fatalf("port %d, want default 8000", c.Server.Port)
	}
	if c.Logging.Level != "info" || c.Logging.Format != "json" {
		t.Fatalf("logging defaults %s/%s", c.Logging.Level, c.Logging.Format)
	}
	if c.Provider.ChartURL == "" || c.Provider.QuoteURL == "" {
		t.Fatal("provider URLs not defaulted")
	}
	if c.Kafka.TrainingTopic != "stockpilot.training.jobs" {
		t.Fatalf("training topic %q", c.Kafka.TrainingTopic)
	}
	if c.Kafka.Consumer.GroupID != "stockpilot-trainer" || c.Kafka.Consumer.Workers != 1 {
		t.Fatalf("consumer defaults %+v", c.Kafka.Consumer)
	}
	if c.Prediction.CacheTTL != 5*time.Minute {
		t.Fatalf("cache ttl %v", c.Prediction.CacheTTL)
	}
	if c.Training.DefaultYears != 3 {
		t.Fatalf("default years %d", c.Training.DefaultYears)
	}
	if c.ClickHouse.BarsTable != "daily_bars" {
		t.Fatalf("bars table %q", c.ClickHouse.BarsTable)
	}
}

func TestLoadExplicitValues(t *testing.T) {
	c, err := Load(writeConfig(t, `
environment: production
server:
  port: 9000
  read_timeout: 5s
models:
  dir: /var/lib/stockpilot/models
  postgres_dsn: "host=db user=app dbname=stockpilot"
training:
  default_years: 5
  tickers: ["AAPL", "MSFT"]
kafka:
  brokers: ["k1:9092", "k2:9092"]
  training_topic: custom.topic
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 9000 || c.Server.ReadTimeout != 5*time.Second {
		t.Fatalf("server %+v", c.Server)
	}
	if c.Models.Dir != "/var/lib/stockpilot/models" {
		t.Fatalf("models dir %q", c.Models.Dir)
	}
	if len(c.Kafka.Brokers) != 2 || c.Kafka.TrainingTopic != "custom.topic" {
		t.Fatalf("kafka %+v", c.Kafka)
	}
	if len(c.Training.Tickers) != 2 || c.Training.DefaultYears != 5 {
		t.Fatalf("training %+v", c.Training)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing environment", `
models:
  postgres_dsn: "host=db"
kafka:
  brokers: ["k:9092"]
`},
		{"missing dsn", `
environment: test
kafka:
  brokers: ["k:9092"]
`},
		{"missing brokers", `
environment: test
models:
  postgres_dsn: "host=db"
`},
		{"bad port", `
environment: test
server:
  port: 70000
models:
  postgres_dsn: "host=db"
kafka:
  brokers: ["k:9092"]
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "host=envdb user=env")
	t.Setenv("KAFKA_BROKERS", "e1:9092,e2:9092")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("TRAIN_TICKERS", "NVDA,AMD")

	c, err := LoadWithEnv(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Models.PostgresDSN != "host=envdb user=env" {
		t.Fatalf("dsn %q not overridden", c.Models.PostgresDSN)
	}
	if len(c.Kafka.Brokers) != 2 || c.Kafka.Brokers[0] != "e1:9092" {
		t.Fatalf("brokers %v", c.Kafka.Brokers)
	}
	if !c.Redis.Enabled || c.Redis.Addr != "cache:6379" {
		t.Fatalf("redis %+v", c.Redis)
	}
	if len(c.Training.Tickers) != 2 || c.Training.Tickers[1] != "AMD" {
		t.Fatalf("tickers %v", c.Training.Tickers)
	}
}
