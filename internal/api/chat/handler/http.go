package chatHandler

import (
	chatService "TravelGolang/internal/api/chat/service"
	"TravelGolang/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	chatService chatService.IChatService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	chatService chatService.IChatService,
) *ChatHandler {
	return &ChatHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		chatService: chatService,
	}
}

func (h *ChatHandler) Start(srv fiber.Router) {
	chat := srv.Group("/chat")

	chat.Post("/conversations", h.middleware.NewTokenMiddleware, h.CreateConversation)
	chat.Get("/conversations", h.middleware.NewTokenMiddleware, h.ListConversations)
	chat.Get("/conversations/:id", h.middleware.NewTokenMiddleware, h.GetConversation)
	chat.Post("/conversations/:id/messages", h.middleware.NewTokenMiddleware, h.SendMessage)
	chat.Post("/conversations/:id/reset", h.middleware.NewTokenMiddleware, h.ResetConversation)

	chat.Use("/ws/:id", h.middleware.NewTokenMiddleware, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	chat.Get("/ws/:id", websocket.New(h.StreamConversation))
}
