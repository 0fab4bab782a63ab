package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MQTTConfig holds the broker connection settings for the reading feed.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	QoS      byte
}

// Config is the full service configuration, loaded from environment
// variables with sensible local-development defaults.
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	MQTT     MQTTConfig

	// Reading ingestion from the Redis stream.
	Ingest struct {
		Stream        string
		ConsumerGroup string
		ConsumerName  string
		BatchSize     int64
	}

	// Periodic evaluation over the per-subject windows.
	Monitor struct {
		TickInterval time.Duration
		WindowSize   int

		Evaluation struct {
			BatchSize int
		}

		// Redis read-path cache for alerts and insights.
		Cache struct {
			KeyPrefix     string
			AlertsSuffix  string
			InsightSuffix string
			TTL           time.Duration
		}
	}

	// Escalation contacts for critical alerts.
	Escalation struct {
		EmergencyContact string
		CaregiverEmails  []string
	}

	Metrics struct {
		Addr string
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "healthwatch")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "healthwatch-monitor")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "healthwatch/readings/#")
	cfg.MQTT.QoS = 1

	cfg.Ingest.Stream = getEnv("INGEST_STREAM", "healthwatch:readings")
	cfg.Ingest.ConsumerGroup = getEnv("INGEST_GROUP", "healthwatch-monitor")
	cfg.Ingest.ConsumerName = getEnv("INGEST_CONSUMER", "monitor-1")
	cfg.Ingest.BatchSize = int64(getEnvInt("INGEST_BATCH_SIZE", 50))

	cfg.Monitor.TickInterval = time.Duration(getEnvInt("MONITOR_TICK_SECONDS", 5)) * time.Second
	cfg.Monitor.WindowSize = getEnvInt("MONITOR_WINDOW_SIZE", 100)
	cfg.Monitor.Evaluation.BatchSize = getEnvInt("MONITOR_EVAL_BATCH", 10)

	cfg.Monitor.Cache.KeyPrefix = getEnv("CACHE_KEY_PREFIX", "health:subject:")
	cfg.Monitor.Cache.AlertsSuffix = ":alerts"
	cfg.Monitor.Cache.InsightSuffix = ":insight"
	cfg.Monitor.Cache.TTL = time.Duration(getEnvInt("CACHE_TTL_SECONDS", 30)) * time.Second

	cfg.Escalation.EmergencyContact = getEnv("EMERGENCY_CONTACT", "")
	if emails := getEnv("CAREGIVER_EMAILS", ""); emails != "" {
		cfg.Escalation.CaregiverEmails = splitCSV(emails)
	}

	cfg.Metrics.Addr = getEnv("METRICS_ADDR", ":9090")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
