package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

// recentReadings loads the satellite readings a reading-driven rule sees:
// everything within the recency window, narrowed to the rule's area when
// the rule is scoped.
func (uc *EngineUseCase) recentReadings(ctx context.Context, rule *domain.AlertRule, now time.Time) ([]*domain.BleachingReading, error) {
	cutoff := now.Add(-readingRecency)
	if rule.ProtectedAreaID != nil {
		readings, err := uc.readingRepo.GetSinceForArea(ctx, *rule.ProtectedAreaID, cutoff)
		if err != nil {
			return nil, fmt.Errorf("load readings for area: %w", err)
		}
		return readings, nil
	}
	readings, err := uc.readingRepo.GetSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("load readings: %w", err)
	}
	return readings, nil
}

func (uc *EngineUseCase) evalBleaching(ctx context.Context, rule *domain.AlertRule, cond *domain.BleachingCondition, now time.Time) ([]*domain.Alert, error) {
	readings, err := uc.recentReadings(ctx, rule, now)
	if err != nil {
		return nil, err
	}

	var alerts []*domain.Alert
	for _, r := range readings {
		if r.AlertLevel < cond.MinAlertLevel {
			continue
		}
		if cond.MinDegreeHeatingWeek != nil && r.DegreeHeatingWeek < *cond.MinDegreeHeatingWeek {
			continue
		}
		if cond.MinSstAnomaly != nil && r.SstAnomaly < *cond.MinSstAnomaly {
			continue
		}

		alert := uc.newAlert(rule, now)
		alert.Title = fmt.Sprintf("Bleaching alert level %d at %s", r.AlertLevel, r.SiteName)
		alert.Message = fmt.Sprintf("NOAA bleaching alert level %d at %s: %.1f degree heating weeks, SST anomaly %+.1f°C.",
			r.AlertLevel, r.SiteName, r.DegreeHeatingWeek, r.SstAnomaly)
		loc := r.Location()
		alert.Location = &loc
		alert.ProtectedAreaID = r.ProtectedAreaID
		alert.Details = map[string]interface{}{
			"reading_id":          r.ID.String(),
			"site_name":           r.SiteName,
			"alert_level":         r.AlertLevel,
			"degree_heating_week": r.DegreeHeatingWeek,
			"sst_anomaly":         r.SstAnomaly,
			"measured_at":         r.MeasuredAt,
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func (uc *EngineUseCase) evalTemperature(ctx context.Context, rule *domain.AlertRule, cond *domain.TemperatureCondition, now time.Time) ([]*domain.Alert, error) {
	readings, err := uc.recentReadings(ctx, rule, now)
	if err != nil {
		return nil, err
	}

	var alerts []*domain.Alert
	for _, r := range readings {
		anomalyHit := r.SstAnomaly > cond.MaxSstAnomaly
		absoluteHit := cond.MaxSst != nil && r.SstCelsius > *cond.MaxSst
		if !anomalyHit && !absoluteHit {
			continue
		}

		alert := uc.newAlert(rule, now)
		alert.Title = fmt.Sprintf("Sea temperature anomaly at %s", r.SiteName)
		alert.Message = fmt.Sprintf("SST %.1f°C (anomaly %+.1f°C) at %s.", r.SstCelsius, r.SstAnomaly, r.SiteName)
		loc := r.Location()
		alert.Location = &loc
		alert.ProtectedAreaID = r.ProtectedAreaID
		alert.Details = map[string]interface{}{
			"reading_id":  r.ID.String(),
			"site_name":   r.SiteName,
			"sst_celsius": r.SstCelsius,
			"sst_anomaly": r.SstAnomaly,
			"measured_at": r.MeasuredAt,
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}
