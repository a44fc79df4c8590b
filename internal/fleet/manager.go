// Package fleet keeps an ordered, in-memory collection of vehicles and
// derives the maintenance and per-status reports from it.
//
// A Manager is not safe for concurrent use.
package fleet

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

const (
	// MileageThreshold is the odometer reading, in kilometers, above which
	// a vehicle is due for maintenance.
	MileageThreshold = 20000.0
	// MonthsThreshold is the number of whole months since the last service
	// after which a vehicle is due for maintenance.
	MonthsThreshold = 6
)

// Manager owns the fleet's vehicles in insertion order.
type Manager struct {
	vehicles []*models.Vehicle
}

// NewManager creates an empty fleet.
func NewManager() *Manager {
	return &Manager{}
}

// AddVehicle appends a vehicle to the fleet. Duplicate IDs are allowed.
func (m *Manager) AddVehicle(v *models.Vehicle) error {
	if v == nil {
		return fmt.Errorf("%w: vehicle must not be nil", models.ErrInvalidArgument)
	}
	m.vehicles = append(m.vehicles, v)

	log.WithFields(log.Fields{
		"vehicle_id": v.ID(),
		"status":     v.Status(),
		"fleet_size": len(m.vehicles),
	}).Debug("Added vehicle")
	return nil
}

// Len returns the number of vehicles in the fleet.
func (m *Manager) Len() int {
	return len(m.vehicles)
}

// ListVehicles returns a snapshot of the fleet in insertion order.
func (m *Manager) ListVehicles() []*models.Vehicle {
	out := make([]*models.Vehicle, len(m.vehicles))
	copy(out, m.vehicles)
	return out
}

// VehiclesNeedingMaintenance returns, in insertion order, the vehicles that
// are due for maintenance as of ref.
func (m *Manager) VehiclesNeedingMaintenance(ref models.Date) []*models.Vehicle {
	due := make([]*models.Vehicle, 0)
	for _, v := range m.vehicles {
		if NeedsMaintenance(v, ref) {
			due = append(due, v)
		}
	}
	return due
}

// VehiclesNeedingMaintenanceToday is VehiclesNeedingMaintenance for the
// current local date.
func (m *Manager) VehiclesNeedingMaintenanceToday() []*models.Vehicle {
	return m.VehiclesNeedingMaintenance(models.Today())
}

// SummaryByStatus aggregates the fleet by current status. Every status is
// present in the result, including those without vehicles.
func (m *Manager) SummaryByStatus() Summary {
	summary := make(Summary, len(models.AllVehicleStatuses()))
	for _, status := range models.AllVehicleStatuses() {
		summary[status] = StatusSummary{}
	}

	for _, v := range m.vehicles {
		s := summary[v.Status()]
		s.Count++
		s.TotalDistance += v.Odometer()
		summary[v.Status()] = s
	}
	return summary
}
