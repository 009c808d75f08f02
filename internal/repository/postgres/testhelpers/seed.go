package testhelpers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// SeedArea inserts a protected area row and returns its ID. Zero-value IDs
// and timestamps are filled in.
func (tdb *TestDB) SeedArea(t *testing.T, area *domain.ProtectedArea) uuid.UUID {
	t.Helper()
	fillAreaDefaults(area)

	boundary, err := area.Boundary.MarshalGeoJSON()
	if err != nil {
		t.Fatalf("Failed to encode seed boundary: %v", err)
	}

	query := `
		INSERT INTO protected_areas (
			id, name, designation, is_no_take_zone,
			boundary_geojson, tier_detail_geojson, tier_medium_geojson, tier_low_geojson,
			center_lat, center_lon, area_sq_km, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = tdb.DB.ExecContext(context.Background(), query,
		area.ID, area.Name, area.Designation, area.IsNoTakeZone,
		string(boundary), tierJSON(t, area.Tiers.Detail), tierJSON(t, area.Tiers.Medium), tierJSON(t, area.Tiers.Low),
		area.CenterLat, area.CenterLon, area.AreaSqKm, area.CreatedAt, area.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("Failed to seed protected area: %v", err)
	}

	return area.ID
}

// SeedCorruptArea inserts an area row whose stored geometry is not valid
// GeoJSON, for exercising skip paths.
func (tdb *TestDB) SeedCorruptArea(t *testing.T, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	query := `
		INSERT INTO protected_areas (
			id, name, boundary_geojson, center_lat, center_lon, area_sq_km
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tdb.DB.ExecContext(context.Background(), query, id, name, "not geojson", 0.0, 0.0, 0.0)
	if err != nil {
		t.Fatalf("Failed to seed corrupt area: %v", err)
	}

	return id
}

// SeedRule inserts an alert rule row and returns its ID.
func (tdb *TestDB) SeedRule(t *testing.T, rule *domain.AlertRule) uuid.UUID {
	t.Helper()
	fillRuleDefaults(rule)

	query := `
		INSERT INTO alert_rules (
			id, name, type, conditions, severity, channels,
			protected_area_id, email_recipients, cooldown_seconds,
			last_triggered_at, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := tdb.DB.ExecContext(context.Background(), query,
		rule.ID, rule.Name, string(rule.Type), []byte(rule.Conditions), string(rule.Severity), int16(rule.Channels),
		rule.ProtectedAreaID, pq.Array(rule.EmailRecipients), rule.CooldownSeconds,
		rule.LastTriggeredAt, rule.IsActive, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("Failed to seed alert rule: %v", err)
	}

	return rule.ID
}

// SeedReading inserts a bleaching reading row and returns its ID.
func (tdb *TestDB) SeedReading(t *testing.T, reading *domain.BleachingReading) uuid.UUID {
	t.Helper()
	if reading.ID == uuid.Nil {
		reading.ID = uuid.New()
	}

	query := `
		INSERT INTO bleaching_readings (
			id, site_name, lat, lon, alert_level,
			degree_heating_week, sst_anomaly, sst_celsius,
			protected_area_id, measured_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tdb.DB.ExecContext(context.Background(), query,
		reading.ID, reading.SiteName, reading.Lat, reading.Lon, reading.AlertLevel,
		reading.DegreeHeatingWeek, reading.SstAnomaly, reading.SstCelsius,
		reading.ProtectedAreaID, reading.MeasuredAt,
	)
	if err != nil {
		t.Fatalf("Failed to seed bleaching reading: %v", err)
	}

	return reading.ID
}

// SeedVesselEvent inserts a vessel event row and returns its ID.
func (tdb *TestDB) SeedVesselEvent(t *testing.T, event *domain.VesselEvent) uuid.UUID {
	t.Helper()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	query := `
		INSERT INTO vessel_events (
			id, vessel_id, vessel_name, is_fishing_vessel, event_type,
			lat, lon, protected_area_id, started_at, ended_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tdb.DB.ExecContext(context.Background(), query,
		event.ID, event.VesselID, event.VesselName, event.IsFishingVessel, string(event.EventType),
		event.Lat, event.Lon, event.ProtectedAreaID, event.StartedAt, event.EndedAt,
	)
	if err != nil {
		t.Fatalf("Failed to seed vessel event: %v", err)
	}

	return event.ID
}

// SeedObservation inserts a citizen observation row and returns its ID.
func (tdb *TestDB) SeedObservation(t *testing.T, obs *domain.CitizenObservation) uuid.UUID {
	t.Helper()
	if obs.ID == uuid.Nil {
		obs.ID = uuid.New()
	}

	query := `
		INSERT INTO citizen_observations (
			id, reporter, health_status, notes,
			lat, lon, protected_area_id, observed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tdb.DB.ExecContext(context.Background(), query,
		obs.ID, obs.Reporter, obs.HealthStatus, obs.Notes,
		obs.Lat, obs.Lon, obs.ProtectedAreaID, obs.ObservedAt,
	)
	if err != nil {
		t.Fatalf("Failed to seed citizen observation: %v", err)
	}

	return obs.ID
}

// RuleTriggeredAt reads last_triggered_at straight from the rules table.
func (tdb *TestDB) RuleTriggeredAt(t *testing.T, id uuid.UUID) *time.Time {
	t.Helper()

	var triggered *time.Time
	err := tdb.DB.QueryRowContext(context.Background(),
		"SELECT last_triggered_at FROM alert_rules WHERE id = $1", id).Scan(&triggered)
	if err != nil {
		t.Fatalf("Failed to read rule trigger time: %v", err)
	}

	return triggered
}

// CountAlerts returns the number of persisted alert rows.
func (tdb *TestDB) CountAlerts(t *testing.T) int {
	t.Helper()

	var n int
	err := tdb.DB.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM alerts").Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count alerts: %v", err)
	}

	return n
}

func fillAreaDefaults(area *domain.ProtectedArea) {
	if area.ID == uuid.Nil {
		area.ID = uuid.New()
	}
	now := time.Now().UTC()
	if area.CreatedAt.IsZero() {
		area.CreatedAt = now
	}
	if area.UpdatedAt.IsZero() {
		area.UpdatedAt = now
	}
}

func fillRuleDefaults(rule *domain.AlertRule) {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	if len(rule.Conditions) == 0 {
		rule.Conditions = []byte("{}")
	}
	if rule.Severity == "" {
		rule.Severity = domain.SeverityWarning
	}
	if rule.EmailRecipients == nil {
		rule.EmailRecipients = []string{}
	}
	now := time.Now().UTC()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	if rule.UpdatedAt.IsZero() {
		rule.UpdatedAt = now
	}
}

func tierJSON(t *testing.T, b *domain.Boundary) *string {
	t.Helper()
	if b == nil {
		return nil
	}

	data, err := b.MarshalGeoJSON()
	if err != nil {
		t.Fatalf("Failed to encode seed tier: %v", err)
	}

	s := string(data)
	return &s
}
