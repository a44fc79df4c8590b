package fleet

import "github.com/ukydev/fleet-maintenance/internal/models"

// Reason names the rule that made a vehicle due for maintenance.
type Reason string

const (
	ReasonMileageExceeded Reason = "mileage_exceeded"
	ReasonTimeExceeded    Reason = "time_exceeded"
)

// NeedsMaintenance reports whether v is due as of ref: its odometer is
// strictly above MileageThreshold, or at least MonthsThreshold whole months
// have passed since its last maintenance.
func NeedsMaintenance(v *models.Vehicle, ref models.Date) bool {
	if v == nil {
		return false
	}
	if v.Odometer() > MileageThreshold {
		return true
	}
	return models.MonthsBetween(v.LastMaintenance(), ref) >= MonthsThreshold
}

// MaintenanceReasons lists every rule v breaks as of ref, mileage first.
// The result is empty exactly when NeedsMaintenance is false.
func MaintenanceReasons(v *models.Vehicle, ref models.Date) []Reason {
	if v == nil {
		return nil
	}
	var reasons []Reason
	if v.Odometer() > MileageThreshold {
		reasons = append(reasons, ReasonMileageExceeded)
	}
	if models.MonthsBetween(v.LastMaintenance(), ref) >= MonthsThreshold {
		reasons = append(reasons, ReasonTimeExceeded)
	}
	return reasons
}
