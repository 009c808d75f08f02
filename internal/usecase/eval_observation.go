package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

func (uc *EngineUseCase) evalObservation(ctx context.Context, rule *domain.AlertRule, cond *domain.CitizenObservationCondition, now time.Time) ([]*domain.Alert, error) {
	observations, err := uc.observationRepo.GetSince(ctx, now.Add(-observationRecency))
	if err != nil {
		return nil, fmt.Errorf("load observations: %w", err)
	}

	var alerts []*domain.Alert
	for _, o := range observations {
		if rule.ProtectedAreaID != nil && (o.ProtectedAreaID == nil || *o.ProtectedAreaID != *rule.ProtectedAreaID) {
			continue
		}
		if !observationMatches(o, cond) {
			continue
		}

		alert := uc.newAlert(rule, now)
		alert.Title = fmt.Sprintf("Reef condition report from %s", o.Reporter)
		alert.Message = fmt.Sprintf("Health status %d/4 reported by %s: %s",
			o.HealthStatus, o.Reporter, excerpt(o.Notes, 140))
		loc := o.Location()
		alert.Location = &loc
		if o.ProtectedAreaID != nil {
			aid := *o.ProtectedAreaID
			alert.ProtectedAreaID = &aid
		}
		alert.Details = map[string]interface{}{
			"observation_id": o.ID.String(),
			"reporter":       o.Reporter,
			"health_status":  o.HealthStatus,
			"observed_at":    o.ObservedAt,
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// observationMatches fires on a health status at or below the ceiling, or
// on any configured keyword in the notes. Keywords match case-sensitively,
// the way the ingest forms store them.
func observationMatches(o *domain.CitizenObservation, cond *domain.CitizenObservationCondition) bool {
	if o.HealthStatus <= cond.MaxHealthStatus {
		return true
	}
	for _, k := range cond.Keywords {
		if strings.Contains(o.Notes, k) {
			return true
		}
	}
	return false
}

// excerpt truncates notes for the alert message without splitting runes.
func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
