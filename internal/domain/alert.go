package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AlertType discriminates what kind of event a rule watches for. It doubles
// as the discriminator of the rule's conditions payload.
type AlertType string

const (
	AlertTypeBleaching          AlertType = "bleaching"
	AlertTypeFishingActivity    AlertType = "fishing_activity"
	AlertTypeVesselInMPA        AlertType = "vessel_in_mpa"
	AlertTypeVesselDark         AlertType = "vessel_dark"
	AlertTypeTemperature        AlertType = "temperature"
	AlertTypeCitizenObservation AlertType = "citizen_observation"
)

// AlertTypes lists every supported type in evaluation order.
var AlertTypes = []AlertType{
	AlertTypeBleaching,
	AlertTypeFishingActivity,
	AlertTypeVesselInMPA,
	AlertTypeVesselDark,
	AlertTypeTemperature,
	AlertTypeCitizenObservation,
}

// ParseAlertType validates a type string from a request or a DB row.
func ParseAlertType(s string) (AlertType, error) {
	for _, t := range AlertTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown alert type: %s", s)
}

// AlertSeverity ranks how urgent an alert is.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// NotificationChannel is a bitmask of delivery channels for a rule.
type NotificationChannel uint8

const (
	ChannelRealTime NotificationChannel = 1 << iota
	ChannelDashboard
	ChannelEmail
	ChannelPush
)

// Has reports whether the flag is set.
func (c NotificationChannel) Has(flag NotificationChannel) bool {
	return c&flag != 0
}

// Names returns the set flags as channel names, in flag order.
func (c NotificationChannel) Names() []string {
	var names []string
	if c.Has(ChannelRealTime) {
		names = append(names, "realtime")
	}
	if c.Has(ChannelDashboard) {
		names = append(names, "dashboard")
	}
	if c.Has(ChannelEmail) {
		names = append(names, "email")
	}
	if c.Has(ChannelPush) {
		names = append(names, "push")
	}
	return names
}

// Alert is a single triggered notification, persisted before any delivery
// is attempted.
type Alert struct {
	ID              uuid.UUID              `json:"id" db:"id"`
	RuleID          uuid.UUID              `json:"rule_id" db:"rule_id"`
	Type            AlertType              `json:"type" db:"type"`
	Severity        AlertSeverity          `json:"severity" db:"severity"`
	Title           string                 `json:"title" db:"title"`
	Message         string                 `json:"message" db:"message"`
	Location        *Coordinate            `json:"location,omitempty" db:"-"`
	ProtectedAreaID *uuid.UUID             `json:"protected_area_id,omitempty" db:"protected_area_id"`
	VesselID        *string                `json:"vessel_id,omitempty" db:"vessel_id"`
	Details         map[string]interface{} `json:"details,omitempty" db:"-"`
	IsAcknowledged  bool                   `json:"is_acknowledged" db:"is_acknowledged"`
	CreatedAt       time.Time              `json:"created_at" db:"created_at"`
	ExpiresAt       time.Time              `json:"expires_at" db:"expires_at"`
}
