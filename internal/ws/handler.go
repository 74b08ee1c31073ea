package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"messaging-service/internal/domain"
	"messaging-service/internal/middleware"
	"messaging-service/internal/response"
)

// handshakeTimeout bounds credential resolution so a stalled lookup cannot
// hold the handshake open indefinitely.
const handshakeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// IdentityResolver maps transport credentials to an existing user.
type IdentityResolver interface {
	Resolve(ctx context.Context, raw string) (*domain.User, error)
}

// Handler performs the authenticated connection-open handshake.
type Handler struct {
	registry *Registry
	resolver IdentityResolver
	logger   *zap.Logger
}

func NewHandler(registry *Registry, resolver IdentityResolver, logger *zap.Logger) *Handler {
	return &Handler{
		registry: registry,
		resolver: resolver,
		logger:   logger,
	}
}

// HandleWebSocket godoc
// @Summary      Open the live connection
// @Description  Authenticates the session token and admits the connection to the registry
// @Tags         websocket
// @Param        token query string true "Session token"
// @Success      101 {string} string "Switching Protocols"
// @Failure      401 {object} map[string]string
// @Router       /ws [get]
func (h *Handler) HandleWebSocket(c *gin.Context) {
	// A rejected handshake closes without touching the registry; the client
	// must re-establish from scratch.
	token := c.Query("token")
	if token == "" {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Token required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), handshakeTimeout)
	defer cancel()

	user, err := h.resolver.Resolve(ctx, token)
	if err != nil {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}

	client := newClient(conn, user.ID, h.logger)
	if displaced := h.registry.Register(user.ID, client); displaced != nil {
		displaced.close()
	}
	middleware.RecordWebSocketConnection()

	ack, _ := json.Marshal(Envelope{Type: TypeConnected, Data: ConnectedData{UserID: user.ID}})
	if !client.enqueue(ack) {
		h.logger.Warn("failed to enqueue connected ack", zap.Uint("userId", user.ID))
	}

	go client.writePump()
	go client.readPump(h.registry)

	h.logger.Info("WebSocket connected",
		zap.Uint("userId", user.ID),
		zap.String("connId", client.id.String()))
}
