package ws

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	"github.com/caribdigital/coralledgerblue-sub004/internal/usecase"
)

// Client - one connected dashboard subscription
type Client struct {
	id string
	// areaID filters the feed to a single protected area. Nil receives
	// every alert.
	areaID *uuid.UUID
	send   chan []byte
}

// wants reports whether an alert scoped to areaID belongs on this
// client's feed. Unscoped alerts only reach unfiltered clients.
func (c *Client) wants(areaID *uuid.UUID) bool {
	if c.areaID == nil {
		return true
	}
	return areaID != nil && *areaID == *c.areaID
}

// envelope carries one published alert payload with its routing scope.
type envelope struct {
	areaID  *uuid.UUID
	payload []byte
}

// Hub maintains the set of connected clients and forwards alert events
// from the Redis pub/sub feed to them. Every engine instance publishes
// to the same channel, so one hub sees alerts from the whole fleet.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *envelope

	redis   *redis.Client
	alertUC *usecase.AlertUseCase
	logger  *zap.Logger
}

// NewHub - create a new websocket hub
func NewHub(redisClient *redis.Client, alertUC *usecase.AlertUseCase, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *envelope),
		redis:      redisClient,
		alertUC:    alertUC,
		logger:     logger,
	}
}

// Run subscribes to the alert channel and serves the client set until the
// context is cancelled. Call it once, in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	sub := h.redis.Subscribe(ctx, domain.ChannelAlertsAll)
	defer sub.Close()

	go h.consume(ctx, sub.Channel())

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug("Websocket client joined",
				zap.String("client_id", client.id),
				zap.Int("clients", len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug("Websocket client left",
					zap.String("client_id", client.id),
					zap.Int("clients", len(h.clients)))
			}

		case env := <-h.broadcast:
			for client := range h.clients {
				if !client.wants(env.areaID) {
					continue
				}
				select {
				case client.send <- env.payload:
				default:
					// A full buffer means the client stopped reading.
					// Drop it rather than stall the feed for everyone.
					delete(h.clients, client)
					close(client.send)
					h.logger.Warn("Websocket client dropped, send buffer full",
						zap.String("client_id", client.id))
				}
			}
		}
	}
}

// consume turns pub/sub messages into routed broadcasts. The area scope is
// read from the event payload; events that fail to decode still reach the
// unfiltered clients.
func (h *Hub) consume(ctx context.Context, messages <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			env := &envelope{payload: []byte(msg.Payload)}

			var event domain.AlertEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				h.logger.Warn("Undecodable alert event on pub/sub", zap.Error(err))
			} else if event.Alert != nil {
				env.areaID = event.Alert.ProtectedAreaID
			}

			select {
			case h.broadcast <- env:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (h *Hub) closeAll() {
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}
