package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/config"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/domain/repository"
)

type emailSender struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	sender     string
	logger     *zap.Logger
}

// NewEmailSender - create a client for the outbound email gateway
func NewEmailSender(cfg *config.NotifyConfig, logger *zap.Logger) repository.EmailSender {
	return &emailSender{
		httpClient: &http.Client{
			Timeout: cfg.ChannelTimeout,
		},
		endpoint: cfg.EmailEndpoint,
		apiKey:   cfg.EmailAPIKey,
		sender:   cfg.EmailSender,
		logger:   logger,
	}
}

// emailRequest is the gateway's send payload.
type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// gatewayResponse is shared by the email and push gateways.
type gatewayResponse struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// SendAlert delivers one alert to the given recipients.
func (s *emailSender) SendAlert(ctx context.Context, alert *domain.Alert, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("recipients cannot be empty")
	}

	payload := emailRequest{
		From:    s.sender,
		To:      recipients,
		Subject: fmt.Sprintf("[%s] %s", strings.ToUpper(string(alert.Severity)), alert.Title),
		Text:    emailBody(alert),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	s.logger.Debug("Calling email gateway",
		zap.String("alert_id", alert.ID.String()),
		zap.Int("recipients", len(recipients)))

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
		s.logger.Error("Email gateway returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return fmt.Errorf("email gateway error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var gwResp gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&gwResp); err != nil {
		s.logger.Error("Failed to decode response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if gwResp.Status != "accepted" {
		s.logger.Error("Email gateway returned non-accepted status",
			zap.String("status", gwResp.Status),
			zap.String("message", gwResp.Message))
		return fmt.Errorf("email gateway returned status: %s", gwResp.Status)
	}

	s.logger.Debug("Email accepted by gateway",
		zap.String("alert_id", alert.ID.String()),
		zap.String("gateway_id", gwResp.ID))

	return nil
}

// emailBody renders the plain-text message. Rangers read these on patrol
// phones, so it stays short and front-loads the location.
func emailBody(alert *domain.Alert) string {
	var b strings.Builder

	b.WriteString(alert.Message)
	b.WriteString("\n\n")

	if alert.Location != nil {
		fmt.Fprintf(&b, "Location: %.5f, %.5f\n", alert.Location.Lat, alert.Location.Lon)
	}
	fmt.Fprintf(&b, "Severity: %s\n", alert.Severity)
	fmt.Fprintf(&b, "Detected: %s\n", alert.CreatedAt.Format(time.RFC1123))

	return b.String()
}
