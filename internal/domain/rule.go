package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AlertRule describes what to watch for, how urgently, and where to deliver.
// Conditions stays raw here; DecodeConditions materializes the concrete
// threshold type matching Type.
type AlertRule struct {
	ID              uuid.UUID           `json:"id" db:"id"`
	Name            string              `json:"name" db:"name"`
	Type            AlertType           `json:"type" db:"type"`
	Conditions      json.RawMessage     `json:"conditions" db:"conditions" swaggertype:"object"`
	Severity        AlertSeverity       `json:"severity" db:"severity"`
	Channels        NotificationChannel `json:"channels" db:"channels"`
	ProtectedAreaID *uuid.UUID          `json:"protected_area_id,omitempty" db:"protected_area_id"`
	EmailRecipients []string            `json:"email_recipients,omitempty" db:"-"`
	CooldownSeconds int64               `json:"cooldown_seconds" db:"cooldown_seconds"`
	LastTriggeredAt *time.Time          `json:"last_triggered_at,omitempty" db:"last_triggered_at"`
	IsActive        bool                `json:"is_active" db:"is_active"`
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" db:"updated_at"`
}

// Cooldown returns the minimum time between two triggers of this rule.
func (r *AlertRule) Cooldown() time.Duration {
	return time.Duration(r.CooldownSeconds) * time.Second
}

// IsEligible reports whether the rule may fire at the given instant. A rule
// is eligible when it is active and either never fired or its cooldown has
// fully elapsed. Pure function of the rule and the clock; callers pass the
// evaluation pass timestamp so every rule in a pass sees the same now.
func (r *AlertRule) IsEligible(now time.Time) bool {
	if !r.IsActive {
		return false
	}
	if r.LastTriggeredAt == nil {
		return true
	}
	return now.Sub(*r.LastTriggeredAt) >= r.Cooldown()
}
