package db

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo connects to MongoDB at uri and verifies the connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// MongoCollection wraps a MongoDB collection for report archive operations.
type MongoCollection struct {
	Collection *mongo.Collection
}

// InsertReport stores a report and returns its hex ID. A missing ID or
// generation time is filled in.
func (c *MongoCollection) InsertReport(ctx context.Context, report models.MaintenanceReport) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	if report.ID.IsZero() {
		report.ID = primitive.NewObjectID()
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now().UTC()
	}

	if _, err := c.Collection.InsertOne(ctx, report); err != nil {
		return "", fmt.Errorf("failed to insert report: %w", err)
	}

	log.WithFields(log.Fields{
		"report_id":      report.ID.Hex(),
		"reference_date": report.ReferenceDate,
		"due":            len(report.Due),
	}).Debug("Archived maintenance report")
	return report.ID.Hex(), nil
}

// mongoReportCursor wraps a MongoDB cursor for report queries.
type mongoReportCursor struct {
	cursor *mongo.Cursor
}

// All retrieves all results from the cursor.
func (m *mongoReportCursor) All(ctx context.Context, out interface{}) error {
	return m.cursor.All(ctx, out)
}

// Close closes the cursor.
func (m *mongoReportCursor) Close(ctx context.Context) error {
	return m.cursor.Close(ctx)
}

// FindReports queries archived reports from the collection.
func (c *MongoCollection) FindReports(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (ReportCursor, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return &mongoReportCursor{cursor: cursor}, nil
}

// FindReportsByDate returns the reports generated for a reference date,
// newest first.
func (c *MongoCollection) FindReportsByDate(ctx context.Context, ref models.Date) ([]models.MaintenanceReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "generated_at", Value: -1}})
	cursor, err := c.FindReports(ctx, bson.M{"reference_date": ref.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.MaintenanceReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// DeleteAll deletes all reports from the collection.
func (c *MongoCollection) DeleteAll(ctx context.Context) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.DeleteMany(ctx, bson.M{})
	return err
}
