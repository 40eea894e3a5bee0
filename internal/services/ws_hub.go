package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"roa-marketplace-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// wsClient wraps a connection with a write mutex. Gorilla connections
// allow at most one concurrent writer, and hub sends race against each
// other and the handler's replies.
type wsClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *wsClient) write(message WSMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// WSHub manages WebSocket connections, one per user. A newer connection
// for the same user replaces the previous one.
type WSHub struct {
	mu             sync.RWMutex
	connections    map[string]*wsClient
	notificaciones NotificacionStore
}

// NewWSHub creates a new WebSocket hub
func NewWSHub(notificaciones NotificacionStore) *WSHub {
	return &WSHub{
		connections:    make(map[string]*wsClient),
		notificaciones: notificaciones,
	}
}

// Register registers a new WebSocket connection for a user
func (h *WSHub) Register(userID string, conn *websocket.Conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Close existing connection if any
	if existing, exists := h.connections[userID]; exists {
		existing.conn.Close()
	}

	h.connections[userID] = &wsClient{conn: conn}

	log.Info().Str("user_id", userID).Msg("WebSocket connection registered")

	// Catch-up sync so a reconnecting client sees what it missed
	go h.sendUnreadSync(userID)

	return nil
}

// Unregister removes a WebSocket connection for a user
func (h *WSHub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, exists := h.connections[userID]; exists {
		client.conn.Close()
		delete(h.connections, userID)
		log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
	}
}

// SendToUser sends a message to a specific user
func (h *WSHub) SendToUser(userID string, message WSMessage) error {
	h.mu.RLock()
	client, exists := h.connections[userID]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("user %s is not connected", userID)
	}

	if err := client.write(message); err != nil {
		h.Unregister(userID)
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// SendNotificacion delivers a notificacion to the recipient's connection
func (h *WSHub) SendNotificacion(userID string, n *models.Notificacion) error {
	return h.SendToUser(userID, WSMessage{
		Type: "notificacion",
		Data: n,
	})
}

// IsOnline checks if a user is online
func (h *WSHub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.connections[userID]
	return exists
}

// sendUnreadSync sends the unread count to a freshly connected client
func (h *WSHub) sendUnreadSync(userID string) {
	count, err := h.notificaciones.UnreadCount(context.Background(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to count unread notifications for sync")
		return
	}

	message := WSMessage{
		Type: "sync",
		Data: map[string]interface{}{
			"unread_count": count,
		},
	}

	if err := h.SendToUser(userID, message); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to send sync message")
	}
}
