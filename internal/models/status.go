package models

import (
	"fmt"
	"strings"
)

// VehicleStatus represents the lifecycle state of a fleet vehicle.
type VehicleStatus string

const (
	StatusActive   VehicleStatus = "ACTIVE"
	StatusInactive VehicleStatus = "INACTIVE"
	StatusInRepair VehicleStatus = "IN_REPAIR"
)

// AllVehicleStatuses returns every status in declaration order.
func AllVehicleStatuses() []VehicleStatus {
	return []VehicleStatus{StatusActive, StatusInactive, StatusInRepair}
}

// IsValid checks if a status is one of the defined values
func (s VehicleStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusInRepair:
		return true
	default:
		return false
	}
}

// Display returns the human form of the status, e.g. "in repair".
func (s VehicleStatus) Display() string {
	return strings.ToLower(strings.ReplaceAll(string(s), "_", " "))
}

func (s VehicleStatus) String() string {
	return s.Display()
}

// ParseVehicleStatus accepts any casing, with underscores or spaces.
func ParseVehicleStatus(s string) (VehicleStatus, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	status := VehicleStatus(normalized)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown vehicle status %q", ErrInvalidArgument, s)
	}
	return status, nil
}
