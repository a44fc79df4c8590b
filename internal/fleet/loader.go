package fleet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// Columns a fleet CSV file must carry. Extra columns are ignored and the
// order is free.
const (
	ColumnVehicleID       = "vehicle_id"
	ColumnOdometer        = "odometer_km"
	ColumnLastMaintenance = "last_maintenance"
	ColumnStatus          = "status"
)

var requiredColumns = []string{ColumnVehicleID, ColumnOdometer, ColumnLastMaintenance, ColumnStatus}

// LoadCSV reads a fleet from CSV: a header row naming the required columns,
// then one vehicle per row. Dates are YYYY-MM-DD and statuses are accepted
// in any form ParseVehicleStatus understands.
//
// Rows are numbered from the header (row 1). The first bad row stops the
// load and its error wraps models.ErrInvalidArgument.
func LoadCSV(r io.Reader) (*Manager, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: fleet file is empty", models.ErrInvalidArgument)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: row 1: %w", models.ErrInvalidArgument, err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	m := NewManager()
	for row := 2; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", models.ErrInvalidArgument, row, err)
		}
		v, err := parseRecord(record, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if err := m.AddVehicle(v); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
	}

	log.WithField("vehicles", m.Len()).Debug("Loaded fleet from CSV")
	return m, nil
}

// columnIndex maps each required column to its position in header.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		idx[name] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: row 1: missing columns %s", models.ErrInvalidArgument, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRecord(record []string, cols map[string]int) (*models.Vehicle, error) {
	field := func(col string) string {
		return strings.TrimSpace(record[cols[col]])
	}

	km, err := strconv.ParseFloat(field(ColumnOdometer), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: odometer %q is not a number", models.ErrInvalidArgument, field(ColumnOdometer))
	}
	last, err := models.ParseDate(field(ColumnLastMaintenance))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrInvalidArgument, err)
	}
	status, err := models.ParseVehicleStatus(field(ColumnStatus))
	if err != nil {
		return nil, err
	}
	return models.NewVehicle(field(ColumnVehicleID), km, last, status)
}
