package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-homework-helper-be/internal/dto"
	"ai-homework-helper-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Hub fans presenter drafts out to the clients watching each session. A
// session can be watched from several tabs or devices at once, and when
// Redis is configured drafts also reach clients connected to other
// instances.
type Hub struct {
	// Registered clients map: SessionID -> List of Clients (multi-device)
	clients map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						// Remove from slice
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
					h.logger.Info("Hub", "Session has no watchers left", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// PublishStreamState pushes a presenter draft to every client watching the
// session, locally and through Redis for other instances.
func (h *Hub) PublishStreamState(sessionID string, state dto.StreamStateResponse) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "stream_state",
		"data": state,
	})

	h.sendLocal(sessionID, data)

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_session_id": sessionID,
			"message":           json.RawMessage(data),
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "stream_events", jsonPayload)
	}
}

func (h *Hub) sendLocal(sessionID string, data []byte) {
	h.mu.RLock()
	clients, found := h.clients[sessionID]
	h.mu.RUnlock()
	if !found {
		return
	}

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// The unregister path owns closing Send.
			h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"session_id": sessionID})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to "stream_events". When a draft arrives, each
	// instance delivers it to the session watchers it holds locally.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "stream_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetSessionID string          `json:"target_session_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.sendLocal(payload.TargetSessionID, payload.Message)
	}
}
