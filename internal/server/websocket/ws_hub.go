package websocket

import (
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// WsHub fans session status updates out to the browsers watching a session,
// keyed by session id. The desktop QR page subscribes so it learns of the
// mobile submission without polling /session_status.
type WsHub struct {
	Clients    map[string]map[*websocket.Conn]bool
	Broadcast  chan StatusMessage
	Register   chan *WsClient
	Unregister chan *WsClient
	Logger     zerolog.Logger
}

type WsClient struct {
	SessionID string
	Conn      *websocket.Conn
}

// StatusMessage mirrors the /session_status payload so subscribers can
// treat both surfaces identically.
type StatusMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	PaymentID string `json:"payment_id,omitempty"`
}

func NewWsHub(logger zerolog.Logger) *WsHub {
	return &WsHub{
		Clients:    make(map[string]map[*websocket.Conn]bool),
		Broadcast:  make(chan StatusMessage, 100),
		Register:   make(chan *WsClient, 100),
		Unregister: make(chan *WsClient, 100),
		Logger:     logger,
	}
}

func (h *WsHub) Run() {
	for {
		select {
		case client := <-h.Register:
			if h.Clients[client.SessionID] == nil {
				h.Clients[client.SessionID] = make(map[*websocket.Conn]bool)
			}
			h.Clients[client.SessionID][client.Conn] = true
			h.Logger.Info().
				Str("session_id", client.SessionID).
				Int("connection_count", len(h.Clients[client.SessionID])).
				Msg("WebSocket client registered")

		case client := <-h.Unregister:
			if clients, ok := h.Clients[client.SessionID]; ok {
				delete(clients, client.Conn)
				h.Logger.Info().
					Str("session_id", client.SessionID).
					Int("connection_count", len(clients)).
					Msg("WebSocket client unregistered")
				if len(clients) == 0 {
					delete(h.Clients, client.SessionID)
				}
				client.Conn.Close()
			}

		case message := <-h.Broadcast:
			clients, ok := h.Clients[message.SessionID]
			if !ok {
				h.Logger.Debug().
					Str("session_id", message.SessionID).
					Str("status", message.Status).
					Msg("No clients subscribed to session")
				continue
			}

			for conn := range clients {
				if err := conn.WriteJSON(message); err != nil {
					h.Logger.Err(err).
						Str("session_id", message.SessionID).
						Str("status", message.Status).
						Msg("Failed to send WebSocket message")
					conn.Close()
					delete(clients, conn)
				}
			}
			if len(clients) == 0 {
				delete(h.Clients, message.SessionID)
			}
		}
	}
}

// BroadcastSessionStatus notifies all subscribers of a session's new status.
func (h *WsHub) BroadcastSessionStatus(sessionID, status, paymentID string) {
	h.Broadcast <- StatusMessage{
		Type:      "session_status",
		SessionID: sessionID,
		Status:    status,
		PaymentID: paymentID,
	}
}
