// Package report renders the fleet reports for the console and builds the
// exported report document.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/fleet"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

const (
	maintenanceHeader = "=== Vehículos que necesitan mantenimiento ==="
	summaryHeader     = "=== Resumen por Estado ==="
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var csvHeader = []string{"vehicle_id", "odometer_km", "last_maintenance", "status", "maintenance_reason"}

// Build assembles the report document for the fleet as of ref.
func Build(m *fleet.Manager, ref models.Date) models.MaintenanceReport {
	due := m.VehiclesNeedingMaintenance(ref)
	rep := models.MaintenanceReport{
		ReferenceDate:    ref.String(),
		GeneratedAt:      time.Now().UTC(),
		MileageThreshold: fleet.MileageThreshold,
		MonthsThreshold:  fleet.MonthsThreshold,
		VehicleCount:     m.Len(),
		Due:              make([]models.DueVehicle, 0, len(due)),
	}

	for _, v := range due {
		reasons := fleet.MaintenanceReasons(v, ref)
		names := make([]string, 0, len(reasons))
		for _, r := range reasons {
			names = append(names, string(r))
		}
		rep.Due = append(rep.Due, models.DueVehicle{
			VehicleID:       v.ID(),
			Odometer:        v.Odometer(),
			LastMaintenance: v.LastMaintenance().String(),
			Status:          v.Status(),
			Reasons:         names,
		})
	}

	summary := m.SummaryByStatus()
	for _, status := range models.AllVehicleStatuses() {
		s := summary[status]
		rep.Summary = append(rep.Summary, models.StatusLine{
			Status:          status,
			Display:         status.Display(),
			Count:           s.Count,
			TotalDistance:   s.TotalDistance,
			AverageDistance: s.AverageDistance(),
		})
	}
	return rep
}

// WriteText prints the console report: the vehicles due for maintenance,
// then one summary line per status that has vehicles.
func WriteText(w io.Writer, due []*models.Vehicle, summary fleet.Summary) error {
	var b strings.Builder
	b.WriteString(maintenanceHeader + "\n")
	for _, v := range due {
		b.WriteString(v.String() + "\n")
	}

	b.WriteString("\n" + summaryHeader + "\n")
	for _, status := range models.AllVehicleStatuses() {
		s := summary[status]
		if s.Count > 0 {
			fmt.Fprintf(&b, "%s: %s\n", status.Display(), s)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes rep as indented JSON.
func WriteJSON(w io.Writer, rep models.MaintenanceReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteCSV writes the vehicles due for maintenance, one row each, with the
// reasons joined by "|".
func WriteCSV(w io.Writer, rep models.MaintenanceReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, d := range rep.Due {
		row := []string{
			d.VehicleID,
			strconv.FormatFloat(d.Odometer, 'f', 2, 64),
			d.LastMaintenance,
			d.Status.Display(),
			strings.Join(d.Reasons, "|"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write renders the fleet in the given format. The JSON and CSV formats
// print rep as given, so callers that also export rep should build it once
// with Build and pass the same document here.
func Write(w io.Writer, format string, m *fleet.Manager, ref models.Date, rep models.MaintenanceReport) error {
	switch format {
	case FormatText, "":
		return WriteText(w, m.VehiclesNeedingMaintenance(ref), m.SummaryByStatus())
	case FormatJSON:
		return WriteJSON(w, rep)
	case FormatCSV:
		return WriteCSV(w, rep)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// IsValidFormat reports whether format is one Write understands.
func IsValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}
