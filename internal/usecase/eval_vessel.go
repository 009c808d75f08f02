package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/pkg/geo"
)

func (uc *EngineUseCase) evalFishing(ctx context.Context, rule *domain.AlertRule, cond *domain.FishingActivityCondition, now time.Time) ([]*domain.Alert, error) {
	cutoff := now.Add(-time.Duration(cond.TimeWindowHours) * time.Hour)
	events, err := uc.vesselRepo.GetEventsSince(ctx, domain.VesselEventFishing, cutoff)
	if err != nil {
		return nil, fmt.Errorf("load fishing events: %w", err)
	}

	// Cluster by protected area; events outside any area share one group
	// under the nil key so open-water rules still see them.
	groups := make(map[uuid.UUID][]*domain.VesselEvent)
	for _, e := range events {
		if cond.OnlyInsideMpa && e.ProtectedAreaID == nil {
			continue
		}
		if rule.ProtectedAreaID != nil && (e.ProtectedAreaID == nil || *e.ProtectedAreaID != *rule.ProtectedAreaID) {
			continue
		}
		key := uuid.Nil
		if e.ProtectedAreaID != nil {
			key = *e.ProtectedAreaID
		}
		groups[key] = append(groups[key], e)
	}

	var areas map[uuid.UUID]*domain.ProtectedArea
	var alerts []*domain.Alert
	for areaID, group := range groups {
		if len(group) < cond.MinEventCount {
			continue
		}
		if areas == nil {
			if areas, err = uc.areaMap(ctx); err != nil {
				return nil, err
			}
		}

		alert := uc.newAlert(rule, now)
		vessels := distinctVessels(group)
		if area, ok := areas[areaID]; ok {
			alert.Title = fmt.Sprintf("Fishing activity cluster in %s", area.Name)
			alert.Message = fmt.Sprintf("%d fishing events by %d vessels inside %s in the last %dh.",
				len(group), len(vessels), area.Name, cond.TimeWindowHours)
			aid := areaID
			alert.ProtectedAreaID = &aid
			center := area.Center()
			alert.Location = &center
		} else {
			alert.Title = "Fishing activity cluster detected"
			alert.Message = fmt.Sprintf("%d fishing events by %d vessels outside protected areas in the last %dh.",
				len(group), len(vessels), cond.TimeWindowHours)
		}
		alert.Details = map[string]interface{}{
			"event_count":  len(group),
			"window_hours": cond.TimeWindowHours,
			"vessel_ids":   vessels,
			"event_ids":    eventIDs(group),
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// evalVesselInMPA alerts on presence episodes that are still open.
// Episodes that already ended are not alerted: the vessel left, there is
// nothing to respond to.
func (uc *EngineUseCase) evalVesselInMPA(ctx context.Context, rule *domain.AlertRule, cond *domain.VesselInMPACondition, now time.Time) ([]*domain.Alert, error) {
	events, err := uc.vesselRepo.GetOpenEvents(ctx, domain.VesselEventPresence)
	if err != nil {
		return nil, fmt.Errorf("load presence events: %w", err)
	}

	minStay := time.Duration(cond.MinDurationMinutes) * time.Minute
	var areas map[uuid.UUID]*domain.ProtectedArea
	var alerts []*domain.Alert
	for _, e := range events {
		if e.ProtectedAreaID == nil {
			continue
		}
		if cond.OnlyFishingVessels && !e.IsFishingVessel {
			continue
		}
		if rule.ProtectedAreaID != nil && *e.ProtectedAreaID != *rule.ProtectedAreaID {
			continue
		}
		if e.Duration(now) < minStay {
			continue
		}
		if areas == nil {
			if areas, err = uc.areaMap(ctx); err != nil {
				return nil, err
			}
		}
		area, ok := areas[*e.ProtectedAreaID]
		if !ok {
			uc.logger.Debug("Presence event references unknown area",
				zap.String("event_id", e.ID.String()),
				zap.String("area_id", e.ProtectedAreaID.String()))
			continue
		}
		if cond.OnlyNoTakeZones && !area.IsNoTakeZone {
			continue
		}

		alert := uc.newAlert(rule, now)
		alert.Title = fmt.Sprintf("Vessel inside %s", area.Name)
		alert.Message = fmt.Sprintf("%s has been inside %s for %d minutes.",
			vesselLabel(e), area.Name, int(e.Duration(now).Minutes()))
		loc := e.Location()
		alert.Location = &loc
		aid := *e.ProtectedAreaID
		alert.ProtectedAreaID = &aid
		vid := e.VesselID
		alert.VesselID = &vid
		alert.Details = map[string]interface{}{
			"event_id":         e.ID.String(),
			"vessel_id":        e.VesselID,
			"vessel_name":      e.VesselName,
			"duration_minutes": int(e.Duration(now).Minutes()),
			"started_at":       e.StartedAt,
			"no_take_zone":     area.IsNoTakeZone,
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// evalVesselDark alerts on open AIS gaps long enough to matter. Nearness
// uses the centroid distance; for the region's compact MPAs that
// approximation stays well inside the configured tolerance.
func (uc *EngineUseCase) evalVesselDark(ctx context.Context, rule *domain.AlertRule, cond *domain.VesselDarkCondition, now time.Time) ([]*domain.Alert, error) {
	events, err := uc.vesselRepo.GetOpenEvents(ctx, domain.VesselEventDarkGap)
	if err != nil {
		return nil, fmt.Errorf("load dark gap events: %w", err)
	}

	minGap := time.Duration(cond.MinDarkDurationMinutes) * time.Minute
	var areas map[uuid.UUID]*domain.ProtectedArea
	var alerts []*domain.Alert
	for _, e := range events {
		if e.Duration(now) < minGap {
			continue
		}
		if areas == nil {
			if areas, err = uc.areaMap(ctx); err != nil {
				return nil, err
			}
		}

		loc := e.Location()
		var nearArea *domain.ProtectedArea
		var distanceKm float64
		if rule.ProtectedAreaID != nil {
			area, ok := areas[*rule.ProtectedAreaID]
			if !ok {
				continue
			}
			d := geo.Distance(loc, area.Center())
			if d > cond.NearMpaDistanceKm {
				continue
			}
			nearArea, distanceKm = area, d
		} else if cond.OnlyNearMpa {
			area, d := nearestArea(areas, loc)
			if area == nil || d > cond.NearMpaDistanceKm {
				continue
			}
			nearArea, distanceKm = area, d
		}

		alert := uc.newAlert(rule, now)
		alert.Title = fmt.Sprintf("AIS signal lost: %s", vesselLabel(e))
		gapMinutes := int(e.Duration(now).Minutes())
		if nearArea != nil {
			alert.Message = fmt.Sprintf("%s stopped transmitting %d minutes ago, %.1f km from %s.",
				vesselLabel(e), gapMinutes, distanceKm, nearArea.Name)
			aid := nearArea.ID
			alert.ProtectedAreaID = &aid
		} else {
			alert.Message = fmt.Sprintf("%s stopped transmitting %d minutes ago.", vesselLabel(e), gapMinutes)
		}
		alert.Location = &loc
		vid := e.VesselID
		alert.VesselID = &vid
		alert.Details = map[string]interface{}{
			"event_id":     e.ID.String(),
			"vessel_id":    e.VesselID,
			"vessel_name":  e.VesselName,
			"gap_minutes":  gapMinutes,
			"last_seen_at": e.StartedAt,
		}
		if nearArea != nil {
			alert.Details["nearest_area"] = nearArea.Name
			alert.Details["distance_km"] = distanceKm
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// nearestArea returns the area whose centroid is closest to p.
func nearestArea(areas map[uuid.UUID]*domain.ProtectedArea, p domain.Coordinate) (*domain.ProtectedArea, float64) {
	var nearest *domain.ProtectedArea
	best := math.MaxFloat64
	for _, a := range areas {
		if d := geo.Distance(p, a.Center()); d < best {
			nearest, best = a, d
		}
	}
	return nearest, best
}

// distinctVessels returns the vessel IDs in first-seen order.
func distinctVessels(events []*domain.VesselEvent) []string {
	seen := make(map[string]bool, len(events))
	var ids []string
	for _, e := range events {
		if !seen[e.VesselID] {
			seen[e.VesselID] = true
			ids = append(ids, e.VesselID)
		}
	}
	return ids
}

func eventIDs(events []*domain.VesselEvent) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID.String()
	}
	return ids
}

func vesselLabel(e *domain.VesselEvent) string {
	if e.VesselName != "" {
		return e.VesselName
	}
	return e.VesselID
}
