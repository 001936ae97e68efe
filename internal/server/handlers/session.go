package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/compile-and-cry/GlobePay/internal/application/intakesvc"
	"github.com/compile-and-cry/GlobePay/internal/domain"
	"github.com/compile-and-cry/GlobePay/internal/server/websocket"
	"github.com/compile-and-cry/GlobePay/pkg/config"
)

type SessionHandler struct {
	intakeSvc intakesvc.IIntakeService
	wsHub     *websocket.WsHub
	upgrader  gws.Upgrader
	logger    zerolog.Logger
}

func NewSessionHandler(intakeSvc intakesvc.IIntakeService, wsHub *websocket.WsHub, cfg *config.Config, logger zerolog.Logger) *SessionHandler {
	readBuf := cfg.WebSocket.ReadBufferSize
	if readBuf == 0 {
		readBuf = 1024
	}
	writeBuf := cfg.WebSocket.WriteBufferSize
	if writeBuf == 0 {
		writeBuf = 1024
	}

	return &SessionHandler{
		intakeSvc: intakeSvc,
		wsHub:     wsHub,
		upgrader: gws.Upgrader{
			ReadBufferSize:  readBuf,
			WriteBufferSize: writeBuf,
			CheckOrigin: func(r *http.Request) bool {
				if !cfg.WebSocket.CheckOrigin {
					return true
				}
				origin := r.Header.Get("Origin")
				return origin == "" || strings.Contains(origin, r.Host)
			},
		},
		logger: logger,
	}
}

// SessionStatus reports where a session is in its lifecycle. Unknown ids
// yield "not_found", unparsable ones "invalid"; never an error status.
func (h *SessionHandler) SessionStatus(c *gin.Context) {
	status := h.intakeSvc.SessionStatus(c.Request.Context(), c.Query("sid"))
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// SessionProcessing force-transitions a session to processing.
func (h *SessionHandler) SessionProcessing(c *gin.Context) {
	sid := c.Query("sid")
	if err := h.intakeSvc.ForceProcessing(c.Request.Context(), sid); err != nil {
		if errors.Is(err, intakesvc.ErrInvalidSessionID) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	h.wsHub.BroadcastSessionStatus(sid, string(domain.SessionStatusProcessing), "")
	c.Status(http.StatusNoContent)
}

// HandleWebSocket subscribes a client to live status updates for one
// session.
func (h *SessionHandler) HandleWebSocket(c *gin.Context) {
	sidStr := c.Query("sid")
	sid, err := uuid.Parse(sidStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, domain.ApiResponse{
			Message: "Invalid session id",
			Success: false,
			Status:  http.StatusBadRequest,
		})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Err(err).
			Str("session_id", sid.String()).
			Msg("Failed to upgrade to WebSocket")
		return
	}

	client := &websocket.WsClient{
		SessionID: sid.String(),
		Conn:      conn,
	}
	h.wsHub.Register <- client
	h.logger.Info().
		Str("session_id", sid.String()).
		Msg("WebSocket client registration sent")

	go func() {
		defer func() {
			h.wsHub.Unregister <- client
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}
