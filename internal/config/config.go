package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/report"
)

// Config holds the runtime settings for the report commands.
type Config struct {
	ReportFormat string
	LogLevel     log.Level

	// FleetFile is a CSV fleet to report on instead of the sample fleet.
	FleetFile string

	// Report archive (optional)
	MongoURI        string
	MongoDB         string
	MongoCollection string

	// Report publishing (optional)
	MQTTBroker   string
	MQTTTopic    string
	MQTTClientID string

	SinkTimeout time.Duration
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := Config{
		ReportFormat:    getEnv("REPORT_FORMAT", report.FormatText),
		FleetFile:       os.Getenv("FLEET_FILE"),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDB:         getEnv("MONGO_DB", "fleet"),
		MongoCollection: getEnv("MONGO_COLLECTION", "maintenance_reports"),
		MQTTBroker:      os.Getenv("MQTT_BROKER"),
		MQTTTopic:       getEnv("MQTT_TOPIC", "fleet/maintenance/report"),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "fleet-maintenance"),
		SinkTimeout:     10 * time.Second,
	}

	if !report.IsValidFormat(cfg.ReportFormat) {
		return Config{}, fmt.Errorf("invalid REPORT_FORMAT %q", cfg.ReportFormat)
	}

	level, err := log.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if v := os.Getenv("SINK_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SINK_TIMEOUT: %w", err)
		}
		if parsed <= 0 {
			return Config{}, fmt.Errorf("invalid SINK_TIMEOUT %q: must be positive", v)
		}
		cfg.SinkTimeout = parsed
	}

	return cfg, nil
}

// ArchiveEnabled reports whether reports should be stored in MongoDB.
func (c Config) ArchiveEnabled() bool {
	return c.MongoURI != ""
}

// PublishEnabled reports whether reports should be sent to the MQTT broker.
func (c Config) PublishEnabled() bool {
	return c.MQTTBroker != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
