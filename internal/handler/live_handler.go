package handler

import (
	"encoding/json"

	"re-ad-be/internal/pkg/logger"
	"re-ad-be/internal/pkg/serverutils"
	"re-ad-be/internal/repository/memory"
	"re-ad-be/internal/service"
	internalWS "re-ad-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// LiveHandler streams workspace snapshots to the browser over WebSocket.
type LiveHandler struct {
	hub       *internalWS.Hub
	registry  *memory.WorkspaceRegistry
	jwtSecret string
	logger    logger.ILogger
}

func NewLiveHandler(hub *internalWS.Hub, registry *memory.WorkspaceRegistry, jwtSecret string, log logger.ILogger) *LiveHandler {
	return &LiveHandler{
		hub:       hub,
		registry:  registry,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (h *LiveHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws", h.ServeWs)
}

// tokenFrom prefers the query parameter browsers can set, then the header.
func tokenFrom(c *fiber.Ctx) string {
	if tokenStr := c.Query("token"); tokenStr != "" {
		return tokenStr
	}
	authHeader := c.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}

func (h *LiveHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := tokenFrom(c)
	if tokenStr == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing token (Query 'token' or Header 'Authorization')")
	}

	userIDStr, err := serverutils.ParseUserID(tokenStr, h.jwtSecret)
	if err != nil {
		h.logger.Warn("LiveHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID format in token")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	initial, err := json.Marshal(internalWS.Message{
		Type: service.MessageSnapshot,
		Data: h.registry.Get(userID).Store.Snapshot(),
	})
	if err != nil {
		return err
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("LiveHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(h.hub, conn, userID, initial)
		h.logger.Info("LiveHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
	})(c)
}
