package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/fleet"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/report"
)

const (
	defaultFleetSize = 10
	maxOdometerKm    = 35000.0
	maxMonthsAgo     = 12
)

// parseFleetSize returns the FLEET_SIZE value, or the default when it is
// unset, malformed or negative.
func parseFleetSize(val string) int {
	if val == "" {
		return defaultFleetSize
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return defaultFleetSize
	}
	return n
}

// parseSeed returns the SIM_SEED value, or a time based seed.
func parseSeed(val string) int64 {
	if val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return n
		}
	}
	return time.Now().UnixNano()
}

// parseStatuses reads the comma separated SIM_STATUSES list. An empty
// value selects every status.
func parseStatuses(val string) ([]models.VehicleStatus, error) {
	if strings.TrimSpace(val) == "" {
		return models.AllVehicleStatuses(), nil
	}
	var statuses []models.VehicleStatus
	for _, part := range strings.Split(val, ",") {
		status, err := models.ParseVehicleStatus(part)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func randomVehicle(rng *rand.Rand, index int, today models.Date, statuses []models.VehicleStatus) (*models.Vehicle, error) {
	id := fmt.Sprintf("SIM-%03d", index+1)
	odometer := float64(int(rng.Float64()*maxOdometerKm*100)) / 100
	last := today.AddMonths(-rng.Intn(maxMonthsAgo + 1)).AddDays(-rng.Intn(28))
	status := statuses[rng.Intn(len(statuses))]
	return models.NewVehicle(id, odometer, last, status)
}

// generateFleet fills a manager with size random vehicles.
func generateFleet(rng *rand.Rand, size int, today models.Date, statuses []models.VehicleStatus) (*fleet.Manager, error) {
	m := fleet.NewManager()
	for i := 0; i < size; i++ {
		v, err := randomVehicle(rng, i, today, statuses)
		if err != nil {
			return nil, err
		}
		if err := m.AddVehicle(v); err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{
			"vehicle_id":       v.ID(),
			"odometer_km":      v.Odometer(),
			"last_maintenance": v.LastMaintenance().String(),
			"status":           v.Status().Display(),
		}).Info("Created vehicle")
	}
	return m, nil
}

func main() {
	log.SetOutput(os.Stderr)

	fleetSize := parseFleetSize(os.Getenv("FLEET_SIZE"))
	seed := parseSeed(os.Getenv("SIM_SEED"))
	today := models.Today()
	statuses, err := parseStatuses(os.Getenv("SIM_STATUSES"))
	if err != nil {
		log.WithError(err).Fatal("Invalid SIM_STATUSES")
	}

	log.WithFields(log.Fields{
		"fleet_size": fleetSize,
		"seed":       seed,
		"date":       today.String(),
		"statuses":   statuses,
	}).Info("Starting fleet simulation")

	m, err := generateFleet(rand.New(rand.NewSource(seed)), fleetSize, today, statuses)
	if err != nil {
		log.WithError(err).Fatal("Failed to generate fleet")
	}

	due := m.VehiclesNeedingMaintenance(today)
	log.WithFields(log.Fields{
		"vehicles": m.Len(),
		"due":      len(due),
	}).Info("Fleet simulation completed")

	if err := report.WriteText(os.Stdout, due, m.SummaryByStatus()); err != nil {
		log.WithError(err).Fatal("Failed to write report")
	}
}
