package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
)

const (
	// writeWait bounds a single frame write.
	writeWait = 10 * time.Second
	// pongWait is how long a silent client stays connected.
	pongWait = 60 * time.Second
	// pingPeriod must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize caps inbound frames. The feed is one-way, clients
	// have nothing big to say.
	maxMessageSize = 512

	sendBuffer      = 256
	backfillLimit   = 20
	backfillTimeout = 5 * time.Second
)

// UpgradeRequired rejects plain HTTP requests on websocket routes.
func UpgradeRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// Handler upgrades the request and serves one alert subscription. An
// optional area_id query parameter narrows the feed to one protected area.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			id:   uuid.NewString(),
			send: make(chan []byte, sendBuffer),
		}

		if raw := conn.Query("area_id"); raw != "" {
			areaID, err := uuid.Parse(raw)
			if err != nil {
				_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid area_id"}`))
				return
			}
			client.areaID = &areaID
		}

		// Replay before joining the live feed so the two cannot interleave.
		h.backfill(conn, client)

		h.register <- client
		defer func() { h.unregister <- client }()

		go writePump(conn, client)
		readLoop(conn)
	})
}

// backfill replays the newest persisted alerts so a fresh dashboard is not
// blank until the next pass fires. Oldest first, so appending preserves
// chronology.
func (h *Hub) backfill(conn *websocket.Conn, client *Client) {
	ctx, cancel := context.WithTimeout(context.Background(), backfillTimeout)
	defer cancel()

	alerts, err := h.alertUC.RecentAlerts(ctx, backfillLimit)
	if err != nil {
		h.logger.Warn("Alert backfill failed", zap.Error(err))
		return
	}

	for i := len(alerts) - 1; i >= 0; i-- {
		if !client.wants(alerts[i].ProtectedAreaID) {
			continue
		}

		payload, err := json.Marshal(&domain.AlertEvent{Event: "alert.backfill", Alert: alerts[i]})
		if err != nil {
			h.logger.Warn("Failed to marshal backfill alert", zap.Error(err))
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// writePump drains the client's buffer onto the wire and keeps the
// connection alive with pings. The hub closes the channel when the client
// is dropped.
func writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop discards inbound frames; it exists to notice disconnects and
// answer the keepalive. The feed is one-way.
func readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
