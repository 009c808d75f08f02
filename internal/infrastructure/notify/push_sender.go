package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/config"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
)

const (
	// globalTopic receives alerts that are not scoped to any area.
	globalTopic = "alerts"
	// areaTopicPrefix scopes a topic to one protected area.
	areaTopicPrefix = "alerts.area."
)

type pushSender struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	logger     *zap.Logger
}

// NewPushSender - create a client for the mobile push gateway
func NewPushSender(cfg *config.NotifyConfig, logger *zap.Logger) repository.PushSender {
	return &pushSender{
		httpClient: &http.Client{
			Timeout: cfg.ChannelTimeout,
		},
		endpoint: cfg.PushEndpoint,
		apiKey:   cfg.PushAPIKey,
		logger:   logger,
	}
}

// pushRequest is the gateway's send payload.
type pushRequest struct {
	Topic string            `json:"topic"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// SendAlert delivers one alert as a push notification. Area-scoped alerts
// go to the area topic, the rest to the global one.
func (s *pushSender) SendAlert(ctx context.Context, alert *domain.Alert) error {
	topic := globalTopic
	data := map[string]string{
		"alert_id": alert.ID.String(),
		"type":     string(alert.Type),
		"severity": string(alert.Severity),
	}
	if alert.ProtectedAreaID != nil {
		topic = areaTopicPrefix + alert.ProtectedAreaID.String()
		data["protected_area_id"] = alert.ProtectedAreaID.String()
	}

	payload := pushRequest{
		Topic: topic,
		Title: alert.Title,
		Body:  alert.Message,
		Data:  data,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	s.logger.Debug("Calling push gateway",
		zap.String("alert_id", alert.ID.String()),
		zap.String("topic", topic))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		s.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("Failed to execute request", zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		s.logger.Error("Push gateway returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return fmt.Errorf("push gateway error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var gwResp gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&gwResp); err != nil {
		s.logger.Error("Failed to decode response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if gwResp.Status != "accepted" {
		s.logger.Error("Push gateway returned non-accepted status",
			zap.String("status", gwResp.Status),
			zap.String("message", gwResp.Message))
		return fmt.Errorf("push gateway returned status: %s", gwResp.Status)
	}

	s.logger.Debug("Push accepted by gateway",
		zap.String("alert_id", alert.ID.String()),
		zap.String("gateway_id", gwResp.ID))

	return nil
}
