package models

import (
	"fmt"
	"math"
	"strings"
)

// Vehicle represents a fleet vehicle. The ID is fixed at construction;
// odometer, last maintenance date and status change only through the
// validating setters, which leave the vehicle untouched on error.
type Vehicle struct {
	id              string
	odometer        float64 // in kilometers
	lastMaintenance Date
	status          VehicleStatus
}

// NewVehicle creates a validated vehicle record.
func NewVehicle(id string, odometer float64, lastMaintenance Date, status VehicleStatus) (*Vehicle, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: vehicle id must not be empty", ErrInvalidArgument)
	}
	if err := validateOdometer(odometer); err != nil {
		return nil, err
	}
	if err := validateMaintenanceDate(lastMaintenance); err != nil {
		return nil, err
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	return &Vehicle{
		id:              id,
		odometer:        odometer,
		lastMaintenance: lastMaintenance,
		status:          status,
	}, nil
}

func (v *Vehicle) ID() string {
	return v.id
}

// Odometer returns the accumulated distance in kilometers.
func (v *Vehicle) Odometer() float64 {
	return v.odometer
}

func (v *Vehicle) LastMaintenance() Date {
	return v.lastMaintenance
}

func (v *Vehicle) Status() VehicleStatus {
	return v.status
}

// SetOdometer replaces the odometer reading.
func (v *Vehicle) SetOdometer(km float64) error {
	if err := validateOdometer(km); err != nil {
		return err
	}
	v.odometer = km
	return nil
}

// SetLastMaintenance replaces the last maintenance date.
func (v *Vehicle) SetLastMaintenance(d Date) error {
	if err := validateMaintenanceDate(d); err != nil {
		return err
	}
	v.lastMaintenance = d
	return nil
}

// SetStatus replaces the vehicle status.
func (v *Vehicle) SetStatus(s VehicleStatus) error {
	if err := validateStatus(s); err != nil {
		return err
	}
	v.status = s
	return nil
}

func (v *Vehicle) String() string {
	return fmt.Sprintf("Vehiculo{id='%s', kilometraje=%.2f, ultimoMantenimiento=%s, estado=%s}",
		v.id, v.odometer, v.lastMaintenance, v.status.Display())
}

func validateOdometer(km float64) error {
	if math.IsNaN(km) || km < 0 {
		return fmt.Errorf("%w: odometer must not be negative, got %v", ErrInvalidArgument, km)
	}
	return nil
}

func validateMaintenanceDate(d Date) error {
	if d.IsZero() {
		return fmt.Errorf("%w: last maintenance date is required", ErrInvalidArgument)
	}
	if !d.IsValid() {
		return fmt.Errorf("%w: last maintenance date %s is not a calendar day", ErrInvalidArgument, d)
	}
	return nil
}

func validateStatus(s VehicleStatus) error {
	if s == "" {
		return fmt.Errorf("%w: vehicle status is required", ErrInvalidArgument)
	}
	if !s.IsValid() {
		return fmt.Errorf("%w: unknown vehicle status %q", ErrInvalidArgument, string(s))
	}
	return nil
}
