package handler

import (
	"os"

	"ai-homework-helper-be/internal/pkg/logger"
	"ai-homework-helper-be/internal/service"
	internalWS "ai-homework-helper-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// StreamHandler upgrades watchers onto the reveal stream of one session.
type StreamHandler struct {
	homeworkService service.IHomeworkService
	guestService    service.IGuestService
	hub             *internalWS.Hub
	logger          logger.ILogger
}

func NewStreamHandler(homeworkService service.IHomeworkService, guestService service.IGuestService, hub *internalWS.Hub, log logger.ILogger) *StreamHandler {
	return &StreamHandler{
		homeworkService: homeworkService,
		guestService:    guestService,
		hub:             hub,
		logger:          log,
	}
}

func (h *StreamHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/stream/v1/:id", h.ServeWs)
}

// ServeWs handles websocket requests from the peer. Browsers cannot set an
// Authorization header on the handshake, so the token (or guest id) arrives
// as a query parameter.
func (h *StreamHandler) ServeWs(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	if guestID := c.Query("guest_id"); guestID != "" {
		if err := h.authorizeGuest(c, guestID, sessionID); err != nil {
			return err
		}
	} else {
		if err := h.authorizeUser(c, sessionID); err != nil {
			return err
		}
	}

	if websocket.IsWebSocketUpgrade(c) {
		sid := sessionID.String()
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("StreamHandler", "Starting stream session", map[string]interface{}{"session_id": sid})
			internalWS.ServeWs(h.hub, conn, sid)
			h.logger.Info("StreamHandler", "Stream session ended", map[string]interface{}{"session_id": sid})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *StreamHandler) authorizeUser(c *fiber.Ctx, sessionID uuid.UUID) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("StreamHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	// Ownership check doubles as a transcript cache warm-up.
	if _, err := h.homeworkService.GetTranscript(c.Context(), userID, sessionID); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Session not accessible"})
	}
	return nil
}

func (h *StreamHandler) authorizeGuest(c *fiber.Ctx, guestID string, sessionID uuid.UUID) error {
	if _, err := uuid.Parse(guestID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid guest id"})
	}

	transcript, err := h.guestService.GetTranscript(c.Context(), guestID)
	if err != nil || transcript.Session.Id != sessionID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Session not accessible"})
	}
	return nil
}
