package db

import (
	"context"

	"github.com/ukydev/fleet-maintenance/internal/models"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReportCollection defines the interface for maintenance report archive operations.
type ReportCollection interface {
	InsertReport(ctx context.Context, report models.MaintenanceReport) (string, error)
	FindReports(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (ReportCursor, error)
}

// ReportCursor defines the interface for report cursor operations.
type ReportCursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}
