package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/config"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/fleet"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/publish"
	"github.com/ukydev/fleet-maintenance/internal/report"
)

type sampleVehicle struct {
	ID        string
	Odometer  float64
	MonthsAgo int
	Status    models.VehicleStatus
}

var sampleVehicles = []sampleVehicle{
	{ID: "V001", Odometer: 25000, MonthsAgo: 2, Status: models.StatusActive},
	{ID: "V002", Odometer: 15000, MonthsAgo: 7, Status: models.StatusActive},
	{ID: "V003", Odometer: 18000, MonthsAgo: 1, Status: models.StatusInRepair},
	{ID: "V004", Odometer: 22000, MonthsAgo: 5, Status: models.StatusActive},
	{ID: "V005", Odometer: 12000, MonthsAgo: 8, Status: models.StatusInactive},
}

// sampleFleet builds the demo fleet with maintenance dates relative to today.
func sampleFleet(today models.Date) (*fleet.Manager, error) {
	m := fleet.NewManager()
	for _, s := range sampleVehicles {
		v, err := models.NewVehicle(s.ID, s.Odometer, today.AddMonths(-s.MonthsAgo), s.Status)
		if err != nil {
			return nil, fmt.Errorf("sample vehicle %s: %w", s.ID, err)
		}
		if err := m.AddVehicle(v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// loadFleet reads the fleet from cfg.FleetFile, or builds the sample fleet
// when no file is configured.
func loadFleet(cfg config.Config, today models.Date) (*fleet.Manager, error) {
	if cfg.FleetFile == "" {
		return sampleFleet(today)
	}
	f, err := os.Open(cfg.FleetFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open fleet file: %w", err)
	}
	defer f.Close()

	m, err := fleet.LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load fleet file %s: %w", cfg.FleetFile, err)
	}
	return m, nil
}

// run prints the reports for m and hands the same report document to the
// optional archive and publisher. Sink failures do not stop the other sink.
func run(ctx context.Context, cfg config.Config, out io.Writer, m *fleet.Manager, today models.Date,
	archive db.ReportCollection, pub publish.Publisher) error {
	doc := report.Build(m, today)
	if err := report.Write(out, cfg.ReportFormat, m, today, doc); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	var errs []error

	if archive != nil {
		sinkCtx, cancel := context.WithTimeout(ctx, cfg.SinkTimeout)
		id, err := archive.InsertReport(sinkCtx, doc)
		cancel()
		if err != nil {
			errs = append(errs, fmt.Errorf("archive report: %w", err))
		} else {
			log.WithField("report_id", id).Info("Archived maintenance report")
		}
	}

	if pub != nil {
		sinkCtx, cancel := context.WithTimeout(ctx, cfg.SinkTimeout)
		err := pub.Publish(sinkCtx, doc)
		cancel()
		if err != nil {
			errs = append(errs, fmt.Errorf("publish report: %w", err))
		} else {
			log.WithField("topic", cfg.MQTTTopic).Info("Published maintenance report")
		}
	}

	return errors.Join(errs...)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	log.SetOutput(os.Stderr)
	log.SetLevel(cfg.LogLevel)

	if err := execute(context.Background(), cfg, os.Stdout, models.Today()); err != nil {
		log.WithError(err).Error("Fleet report failed")
		os.Exit(1)
	}
}

// execute loads the fleet, connects the configured sinks and calls run. A
// sink that cannot connect is skipped; its error is returned with run's so
// the report is still printed and the other sink still receives it.
func execute(ctx context.Context, cfg config.Config, out io.Writer, today models.Date) error {
	m, err := loadFleet(cfg, today)
	if err != nil {
		return err
	}

	var errs []error

	var archive db.ReportCollection
	if cfg.ArchiveEnabled() {
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to connect to MongoDB: %w", err))
		} else {
			defer client.Disconnect(context.Background())
			archive = &db.MongoCollection{Collection: client.Database(cfg.MongoDB).Collection(cfg.MongoCollection)}
		}
	}

	var pub publish.Publisher
	if cfg.PublishEnabled() {
		p, err := publish.NewMQTTPublisher(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic, cfg.SinkTimeout)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to connect to MQTT broker: %w", err))
		} else {
			defer p.Close()
			pub = p
		}
	}

	log.WithFields(log.Fields{
		"vehicles": m.Len(),
		"date":     today.String(),
		"format":   cfg.ReportFormat,
	}).Debug("Generating fleet report")

	errs = append(errs, run(ctx, cfg, out, m, today, archive, pub))
	return errors.Join(errs...)
}
