package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAlertRule_IsEligible(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		rule        AlertRule
		expected    bool
		description string
	}{
		{
			name: "active rule that never fired",
			rule: AlertRule{
				IsActive:        true,
				CooldownSeconds: 3600,
			},
			expected:    true,
			description: "Should be eligible when last_triggered_at is nil",
		},
		{
			name: "inactive rule that never fired",
			rule: AlertRule{
				IsActive:        false,
				CooldownSeconds: 3600,
			},
			expected:    false,
			description: "Should never be eligible while inactive",
		},
		{
			name: "cooldown fully elapsed",
			rule: AlertRule{
				IsActive:        true,
				CooldownSeconds: 1800,
				LastTriggeredAt: timePtr(now.Add(-time.Hour)),
			},
			expected:    true,
			description: "Should be eligible once the cooldown has passed",
		},
		{
			name: "fired one second ago with long cooldown",
			rule: AlertRule{
				IsActive:        true,
				CooldownSeconds: 3600,
				LastTriggeredAt: timePtr(now.Add(-time.Second)),
			},
			expected:    false,
			description: "Should be suppressed inside the cooldown window",
		},
		{
			name: "cooldown boundary is inclusive",
			rule: AlertRule{
				IsActive:        true,
				CooldownSeconds: 1800,
				LastTriggeredAt: timePtr(now.Add(-30 * time.Minute)),
			},
			expected:    true,
			description: "Should be eligible exactly at cooldown expiry",
		},
		{
			name: "zero cooldown fired just now",
			rule: AlertRule{
				IsActive:        true,
				CooldownSeconds: 0,
				LastTriggeredAt: timePtr(now),
			},
			expected:    true,
			description: "Zero cooldown never suppresses",
		},
		{
			name: "inactive rule with elapsed cooldown",
			rule: AlertRule{
				IsActive:        false,
				CooldownSeconds: 60,
				LastTriggeredAt: timePtr(now.Add(-time.Hour)),
			},
			expected:    false,
			description: "Inactive wins over any cooldown state",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.rule.IsEligible(now)
			assert.Equal(t, tt.expected, result, tt.description)
		})
	}
}

func TestAlertRule_Cooldown(t *testing.T) {
	rule := AlertRule{CooldownSeconds: 90}
	assert.Equal(t, 90*time.Second, rule.Cooldown())
}

// Helper function to create time pointers
func timePtr(ts time.Time) *time.Time {
	return &ts
}
