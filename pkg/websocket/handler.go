package websocket

import (
	"net/http"
	"time"

	"campus-im/config"
	"campus-im/pkg/jwt"
	"campus-im/pkg/logger"
	"campus-im/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gws "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = gws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades authenticated clients to a notification push socket.
type Handler struct {
	manager  *Manager
	jwtSvc   *jwt.JWTService
	sessions jwt.SessionVerifier
	cfg      config.WebSocketConfig
}

func NewHandler(manager *Manager, jwtSvc *jwt.JWTService, sessions jwt.SessionVerifier, cfg config.WebSocketConfig) *Handler {
	return &Handler{manager: manager, jwtSvc: jwtSvc, sessions: sessions, cfg: cfg}
}

// Serve is the gin endpoint. The token travels as a query parameter because
// browsers cannot set headers on websocket dials.
func (h *Handler) Serve(c *gin.Context) {
	token := c.Query("token")
	claims, err := h.jwtSvc.ValidateToken(token)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if h.sessions != nil {
		if err := h.sessions.VerifySession(token); err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		UserID: userID,
		Send:   make(chan []byte, 64),
	}
	h.manager.AddClient(userID, client)
	_ = redis.SetUserPresence(userID, "", "online")

	go h.writePump(conn, client)
	go h.readPump(conn, client)
}

// readPump keeps the read side alive for pong handling; inbound frames are
// ignored, the socket is push-only.
func (h *Handler) readPump(conn *gws.Conn, client *Client) {
	defer func() {
		h.manager.RemoveClient(client.UserID, client)
		_ = redis.RemoveUserPresence(client.UserID)
		conn.Close()
	}()

	conn.SetReadLimit(1024)
	_ = conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
		_ = redis.RefreshUserPresence(client.UserID)
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) writePump(conn *gws.Conn, client *Client) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				_ = conn.WriteMessage(gws.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(gws.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(gws.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
