package fleet

import (
	"fmt"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// StatusSummary is the vehicle count and total odometer distance for
// one status.
type StatusSummary struct {
	Count         int
	TotalDistance float64 // in kilometers
}

// AverageDistance returns TotalDistance / Count, or 0 for an empty group.
func (s StatusSummary) AverageDistance() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.TotalDistance / float64(s.Count)
}

func (s StatusSummary) String() string {
	return fmt.Sprintf("Cantidad: %d, Kilometraje Total: %.2f", s.Count, s.TotalDistance)
}

// Summary maps each vehicle status to its aggregate.
type Summary map[models.VehicleStatus]StatusSummary

// Total returns the aggregate over all statuses.
func (s Summary) Total() StatusSummary {
	var total StatusSummary
	for _, st := range s {
		total.Count += st.Count
		total.TotalDistance += st.TotalDistance
	}
	return total
}
