package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-maintenance/internal/config"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MockReportCollection is a mock implementation of db.ReportCollection
type MockReportCollection struct {
	mock.Mock
}

func (m *MockReportCollection) InsertReport(ctx context.Context, report models.MaintenanceReport) (string, error) {
	args := m.Called(ctx, report)
	return args.String(0), args.Error(1)
}

func (m *MockReportCollection) FindReports(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (db.ReportCursor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(db.ReportCursor), args.Error(1)
}

// MockPublisher is a mock implementation of publish.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, report models.MaintenanceReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockPublisher) Close() {
	m.Called()
}

var testDate = models.NewDate(2026, time.October, 19)

func testConfig(format string) config.Config {
	return config.Config{ReportFormat: format, SinkTimeout: time.Second, MQTTTopic: "fleet/test"}
}

func TestSampleFleet(t *testing.T) {
	m, err := sampleFleet(testDate)
	require.NoError(t, err)

	vehicles := m.ListVehicles()
	require.Len(t, vehicles, 5)
	assert.Equal(t, "V001", vehicles[0].ID())
	assert.Equal(t, models.NewDate(2026, time.August, 19), vehicles[0].LastMaintenance())
	assert.Equal(t, "V005", vehicles[4].ID())
	assert.Equal(t, models.StatusInactive, vehicles[4].Status())
}

func TestRun_TextReport(t *testing.T) {
	m, err := sampleFleet(testDate)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), testConfig("text"), &out, m, testDate, nil, nil))

	want := strings.Join([]string{
		"=== Vehículos que necesitan mantenimiento ===",
		"Vehiculo{id='V001', kilometraje=25000.00, ultimoMantenimiento=2026-08-19, estado=active}",
		"Vehiculo{id='V002', kilometraje=15000.00, ultimoMantenimiento=2026-03-19, estado=active}",
		"Vehiculo{id='V004', kilometraje=22000.00, ultimoMantenimiento=2026-05-19, estado=active}",
		"Vehiculo{id='V005', kilometraje=12000.00, ultimoMantenimiento=2026-02-19, estado=inactive}",
		"",
		"=== Resumen por Estado ===",
		"active: Cantidad: 3, Kilometraje Total: 62000.00",
		"inactive: Cantidad: 1, Kilometraje Total: 12000.00",
		"in repair: Cantidad: 1, Kilometraje Total: 18000.00",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestRun_Sinks(t *testing.T) {
	m, err := sampleFleet(testDate)
	require.NoError(t, err)

	archive := &MockReportCollection{}
	archive.On("InsertReport", mock.Anything, mock.MatchedBy(func(r models.MaintenanceReport) bool {
		return r.ReferenceDate == "2026-10-19" && len(r.Due) == 4 && r.VehicleCount == 5
	})).Return("65f1c0ffee0000000000abcd", nil)

	pub := &MockPublisher{}
	pub.On("Publish", mock.Anything, mock.AnythingOfType("models.MaintenanceReport")).Return(nil)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), testConfig("csv"), &out, m, testDate, archive, pub))

	archive.AssertExpectations(t)
	pub.AssertExpectations(t)
	assert.True(t, strings.HasPrefix(out.String(), "vehicle_id,odometer_km"))
}

func TestRun_SinkErrors(t *testing.T) {
	m, err := sampleFleet(testDate)
	require.NoError(t, err)

	archive := &MockReportCollection{}
	archive.On("InsertReport", mock.Anything, mock.Anything).Return("", errors.New("db error"))

	pub := &MockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	var out bytes.Buffer
	err = run(context.Background(), testConfig("json"), &out, m, testDate, archive, pub)

	assert.ErrorContains(t, err, "db error")
	assert.ErrorContains(t, err, "broker down")
	// the printed report is unaffected by sink failures
	assert.Contains(t, out.String(), `"reference_date": "2026-10-19"`)
	pub.AssertCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestRun_UnknownFormat(t *testing.T) {
	m, err := sampleFleet(testDate)
	require.NoError(t, err)

	archive := &MockReportCollection{}
	var out bytes.Buffer
	err = run(context.Background(), testConfig("yaml"), &out, m, testDate, archive, nil)

	assert.Error(t, err)
	archive.AssertNotCalled(t, "InsertReport", mock.Anything, mock.Anything)
}

func TestRun_SinksShareDocument(t *testing.T) {
	m, err := sampleFleet(testDate)
	require.NoError(t, err)

	var archived, published models.MaintenanceReport
	archive := &MockReportCollection{}
	archive.On("InsertReport", mock.Anything, mock.Anything).Return("65f1c0ffee0000000000abcd", nil).
		Run(func(args mock.Arguments) { archived = args.Get(1).(models.MaintenanceReport) })
	pub := &MockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil).
		Run(func(args mock.Arguments) { published = args.Get(1).(models.MaintenanceReport) })

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), testConfig("json"), &out, m, testDate, archive, pub))

	var printed models.MaintenanceReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))
	assert.False(t, printed.GeneratedAt.IsZero())
	assert.True(t, printed.GeneratedAt.Equal(archived.GeneratedAt))
	assert.True(t, printed.GeneratedAt.Equal(published.GeneratedAt))
}

func TestExecute_SinkConnectFailure(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(cfg *config.Config)
		wantErr string
	}{
		{
			name: "mongo unreachable",
			setup: func(cfg *config.Config) {
				cfg.MongoURI = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=300"
				cfg.MongoDB = "fleet"
				cfg.MongoCollection = "maintenance_reports"
			},
			wantErr: "failed to connect to MongoDB",
		},
		{
			name: "mqtt unreachable",
			setup: func(cfg *config.Config) {
				cfg.MQTTBroker = "tcp://127.0.0.1:1"
				cfg.MQTTClientID = "fleet-test"
			},
			wantErr: "failed to connect to MQTT broker",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("text")
			tt.setup(&cfg)

			var out bytes.Buffer
			err := execute(context.Background(), cfg, &out, testDate)

			assert.ErrorContains(t, err, tt.wantErr)
			// the report is printed even though the sink never connected
			assert.Contains(t, out.String(), "=== Vehículos que necesitan mantenimiento ===")
			assert.Contains(t, out.String(), "=== Resumen por Estado ===")
		})
	}
}

func TestExecute_FleetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.csv")
	content := "vehicle_id,odometer_km,last_maintenance,status\n" +
		"T001,20001,2026-10-01,ACTIVE\n" +
		"T002,500,2026-10-01,INACTIVE\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := testConfig("csv")
	cfg.FleetFile = path

	var out bytes.Buffer
	require.NoError(t, execute(context.Background(), cfg, &out, testDate))

	want := "vehicle_id,odometer_km,last_maintenance,status,maintenance_reason\n" +
		"T001,20001.00,2026-10-01,active,mileage_exceeded\n"
	assert.Equal(t, want, out.String())
}

func TestLoadFleet(t *testing.T) {
	m, err := loadFleet(testConfig("text"), testDate)
	require.NoError(t, err)
	assert.Equal(t, 5, m.Len())

	cfg := testConfig("text")
	cfg.FleetFile = filepath.Join(t.TempDir(), "missing.csv")
	_, err = loadFleet(cfg, testDate)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("vehicle_id,odometer_km,last_maintenance,status\nT001,-1,2026-10-01,ACTIVE\n"), 0o600))
	cfg.FleetFile = bad
	_, err = loadFleet(cfg, testDate)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	assert.ErrorContains(t, err, "row 2")
}
