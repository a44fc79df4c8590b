package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceReport is the exported form of the fleet reports: the
// vehicles due for maintenance and the per-status summary.
type MaintenanceReport struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitzero"`
	ReferenceDate    string             `bson:"reference_date" json:"reference_date"` // YYYY-MM-DD
	GeneratedAt      time.Time          `bson:"generated_at" json:"generated_at"`
	MileageThreshold float64            `bson:"mileage_threshold" json:"mileage_threshold"` // in kilometers
	MonthsThreshold  int                `bson:"months_threshold" json:"months_threshold"`
	VehicleCount     int                `bson:"vehicle_count" json:"vehicle_count"`
	Due              []DueVehicle       `bson:"due" json:"due"`
	Summary          []StatusLine       `bson:"summary" json:"summary"`
}

// DueVehicle describes one vehicle that needs maintenance.
type DueVehicle struct {
	VehicleID       string        `bson:"vehicle_id" json:"vehicle_id"`
	Odometer        float64       `bson:"odometer_km" json:"odometer_km"`
	LastMaintenance string        `bson:"last_maintenance" json:"last_maintenance"`
	Status          VehicleStatus `bson:"status" json:"status"`
	Reasons         []string      `bson:"reasons" json:"reasons"` // "mileage_exceeded", "time_exceeded"
}

// StatusLine is the aggregate for one vehicle status.
type StatusLine struct {
	Status          VehicleStatus `bson:"status" json:"status"`
	Display         string        `bson:"display" json:"display"`
	Count           int           `bson:"count" json:"count"`
	TotalDistance   float64       `bson:"total_distance_km" json:"total_distance_km"`
	AverageDistance float64       `bson:"average_distance_km" json:"average_distance_km"`
}
