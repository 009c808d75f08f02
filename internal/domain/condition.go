package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RuleCondition is the decoded threshold payload of a rule. Each alert type
// has its own concrete condition struct.
type RuleCondition interface {
	// Kind returns the alert type the condition belongs to.
	Kind() AlertType
	// Validate checks field ranges after decoding.
	Validate() error
}

// BleachingCondition triggers on coral bleaching heat stress readings.
type BleachingCondition struct {
	// MinAlertLevel is the NOAA bleaching alert level (0-4) at or above
	// which the rule fires.
	MinAlertLevel int `json:"min_alert_level"`
	// MinDegreeHeatingWeek additionally requires DHW at or above the value.
	MinDegreeHeatingWeek *float64 `json:"min_degree_heating_week,omitempty"`
	// MinSstAnomaly additionally requires an SST anomaly at or above the
	// value, in degrees Celsius.
	MinSstAnomaly *float64 `json:"min_sst_anomaly,omitempty"`
}

func (c *BleachingCondition) Kind() AlertType { return AlertTypeBleaching }

func (c *BleachingCondition) Validate() error {
	if c.MinAlertLevel < 0 || c.MinAlertLevel > 4 {
		return fmt.Errorf("min_alert_level must be between 0 and 4, got %d", c.MinAlertLevel)
	}
	if c.MinDegreeHeatingWeek != nil && *c.MinDegreeHeatingWeek < 0 {
		return fmt.Errorf("min_degree_heating_week must not be negative")
	}
	return nil
}

// FishingActivityCondition triggers on clusters of detected fishing events.
type FishingActivityCondition struct {
	// MinEventCount is how many fishing events must accumulate in the window.
	MinEventCount int `json:"min_event_count"`
	// TimeWindowHours is the lookback window for counting events.
	TimeWindowHours int `json:"time_window_hours"`
	// OnlyInsideMpa restricts counting to events inside a protected area.
	OnlyInsideMpa bool `json:"only_inside_mpa"`
}

func (c *FishingActivityCondition) Kind() AlertType { return AlertTypeFishingActivity }

func (c *FishingActivityCondition) Validate() error {
	if c.MinEventCount < 1 {
		return fmt.Errorf("min_event_count must be at least 1, got %d", c.MinEventCount)
	}
	if c.TimeWindowHours < 1 {
		return fmt.Errorf("time_window_hours must be at least 1, got %d", c.TimeWindowHours)
	}
	return nil
}

// VesselInMPACondition triggers on a vessel loitering inside a protected area.
type VesselInMPACondition struct {
	// MinDurationMinutes is the minimum continuous presence before firing.
	MinDurationMinutes int `json:"min_duration_minutes"`
	// OnlyFishingVessels ignores vessels not classified as fishing vessels.
	OnlyFishingVessels bool `json:"only_fishing_vessels"`
	// OnlyNoTakeZones restricts to areas designated no-take.
	OnlyNoTakeZones bool `json:"only_no_take_zones"`
}

func (c *VesselInMPACondition) Kind() AlertType { return AlertTypeVesselInMPA }

func (c *VesselInMPACondition) Validate() error {
	if c.MinDurationMinutes < 1 {
		return fmt.Errorf("min_duration_minutes must be at least 1, got %d", c.MinDurationMinutes)
	}
	return nil
}

// VesselDarkCondition triggers when a vessel stops transmitting AIS.
type VesselDarkCondition struct {
	// MinDarkDurationMinutes is the minimum transmission gap before firing.
	MinDarkDurationMinutes int `json:"min_dark_duration_minutes"`
	// OnlyNearMpa ignores gaps that started far from any protected area.
	OnlyNearMpa bool `json:"only_near_mpa"`
	// NearMpaDistanceKm is the distance that counts as "near" an area.
	NearMpaDistanceKm float64 `json:"near_mpa_distance_km"`
}

func (c *VesselDarkCondition) Kind() AlertType { return AlertTypeVesselDark }

func (c *VesselDarkCondition) Validate() error {
	if c.MinDarkDurationMinutes < 1 {
		return fmt.Errorf("min_dark_duration_minutes must be at least 1, got %d", c.MinDarkDurationMinutes)
	}
	if c.NearMpaDistanceKm < 0 {
		return fmt.Errorf("near_mpa_distance_km must not be negative")
	}
	return nil
}

// TemperatureCondition triggers on sea surface temperature anomalies.
type TemperatureCondition struct {
	// MaxSst additionally fires on absolute SST above the value, in
	// degrees Celsius.
	MaxSst *float64 `json:"max_sst,omitempty"`
	// MaxSstAnomaly is the anomaly in degrees Celsius above which the rule
	// fires.
	MaxSstAnomaly float64 `json:"max_sst_anomaly"`
}

func (c *TemperatureCondition) Kind() AlertType { return AlertTypeTemperature }

func (c *TemperatureCondition) Validate() error {
	if c.MaxSstAnomaly < 0 {
		return fmt.Errorf("max_sst_anomaly must not be negative")
	}
	if c.MaxSst != nil && *c.MaxSst < 0 {
		return fmt.Errorf("max_sst must not be negative")
	}
	return nil
}

// CitizenObservationCondition triggers on community-reported reef conditions.
type CitizenObservationCondition struct {
	// MaxHealthStatus fires on reports at or below the value. Health status
	// is ordinal with lower meaning worse.
	MaxHealthStatus int `json:"max_health_status"`
	// Keywords fires on reports whose description contains any entry as a
	// case-sensitive substring, regardless of health status.
	Keywords []string `json:"keywords,omitempty"`
}

func (c *CitizenObservationCondition) Kind() AlertType { return AlertTypeCitizenObservation }

func (c *CitizenObservationCondition) Validate() error {
	if c.MaxHealthStatus < 0 {
		return fmt.Errorf("max_health_status must not be negative")
	}
	for _, k := range c.Keywords {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("keywords must not contain empty entries")
		}
	}
	return nil
}

// conditionProbe peeks at the discriminator embedded in the payload.
type conditionProbe struct {
	Type string `json:"type"`
}

// DecodeConditions materializes the raw conditions payload of a rule into
// the concrete condition type matching the rule's alert type. Absent fields
// take their documented defaults; unknown fields are ignored. A payload
// whose embedded type discriminator contradicts the rule type is rejected,
// as is any out-of-range threshold. Rules whose conditions fail to decode
// are skipped by the engine, never treated as matching everything.
func DecodeConditions(ruleType AlertType, raw json.RawMessage) (RuleCondition, error) {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}

	var probe conditionProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse conditions: %w", err)
	}
	if probe.Type != "" && probe.Type != string(ruleType) {
		return nil, fmt.Errorf("conditions type %q does not match rule type %q", probe.Type, ruleType)
	}

	var cond RuleCondition
	switch ruleType {
	case AlertTypeBleaching:
		cond = &BleachingCondition{MinAlertLevel: 2}
	case AlertTypeFishingActivity:
		cond = &FishingActivityCondition{MinEventCount: 5, TimeWindowHours: 24, OnlyInsideMpa: true}
	case AlertTypeVesselInMPA:
		cond = &VesselInMPACondition{MinDurationMinutes: 30, OnlyFishingVessels: true}
	case AlertTypeVesselDark:
		cond = &VesselDarkCondition{MinDarkDurationMinutes: 60, OnlyNearMpa: true, NearMpaDistanceKm: 10}
	case AlertTypeTemperature:
		cond = &TemperatureCondition{MaxSstAnomaly: 1.0}
	case AlertTypeCitizenObservation:
		cond = &CitizenObservationCondition{MaxHealthStatus: 2}
	default:
		return nil, fmt.Errorf("unsupported alert type: %s", ruleType)
	}

	if err := json.Unmarshal(raw, cond); err != nil {
		return nil, fmt.Errorf("failed to decode %s conditions: %w", ruleType, err)
	}
	if err := cond.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s conditions: %w", ruleType, err)
	}
	return cond, nil
}
