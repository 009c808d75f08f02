package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Stream names (must match the ingest pipelines)
const (
	// StreamAlertsEvaluate carries on-demand evaluation triggers, e.g.
	// after a bleaching data sync lands new readings.
	StreamAlertsEvaluate = "stream:alerts:evaluate"
)

// Pub/sub channel names for realtime alert delivery.
const (
	// ChannelAlertsAll receives every published alert.
	ChannelAlertsAll = "alerts:all"
	// channelAlertsAreaPrefix scopes a channel to one protected area.
	channelAlertsAreaPrefix = "alerts:area:"
)

// ChannelAlertsArea returns the pub/sub channel for one protected area.
func ChannelAlertsArea(areaID uuid.UUID) string {
	return channelAlertsAreaPrefix + areaID.String()
}

// EvaluateTriggerEvent asks the engine to run one rule type immediately.
// An empty Type means run everything.
type EvaluateTriggerEvent struct {
	Type   string `json:"type,omitempty"`
	Source string `json:"source,omitempty"`
}

// AlertType returns the parsed alert type, or an error for unknown values.
func (e *EvaluateTriggerEvent) AlertType() (AlertType, error) {
	if e.Type == "" {
		return "", fmt.Errorf("trigger event has no type")
	}
	return ParseAlertType(e.Type)
}

// AlertEvent is the wire payload published on the realtime channels and
// pushed to dashboard websocket clients.
type AlertEvent struct {
	Event string `json:"event"`
	Alert *Alert `json:"alert"`
}

// NewAlertEvent wraps a freshly persisted alert for publication.
func NewAlertEvent(a *Alert) *AlertEvent {
	return &AlertEvent{Event: "alert.created", Alert: a}
}

// StreamMessage - message read from a Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
