package router

import (
	"context"

	"qsite/internal/api/comm"
	"qsite/internal/api/handlers"
	messagingapp "qsite/internal/messaging/app"
	"qsite/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
)

// Handlers 所有路由用到的 handler
type Handlers struct {
	Messaging *handlers.MessagingHandler
	Status    *handlers.StatusHandler
	Admin     *handlers.AdminHandler
	Member    *handlers.MemberHandler
	Websocket *messagingapp.UnreadWebsocketHandler
}

// RegisterRoutes 註冊所有路由
// @title Qsite API
// @version 1.0
// @description Messaging, status and administration API for Qsite
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func RegisterRoutes(app *fiber.App, sessions middlewares.SessionChecker, h Handlers) {
	app.Use(middlewares.LanguageMiddleware())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", comm.ConnectCheck)
	app.Post("/debug", comm.DebugLogFlag)

	auth := middlewares.JWTMiddleware(sessions)
	optional := middlewares.OptionalJWTMiddleware(sessions)

	// 未登入也回 200 {count: 0}
	app.Get("/unread-count", optional, h.Messaging.UnreadCount)

	authRoutes := app.Group("/auth")
	authRoutes.Post("/login", h.Member.Login)
	authRoutes.Post("/logout", auth, h.Member.Logout)
	authRoutes.Get("/me", auth, h.Member.Me)

	conversations := app.Group("/conversations", auth)
	conversations.Get("/unread", h.Messaging.ListUnread)
	conversations.Post("/:id/read", h.Messaging.MarkRead)

	blocks := app.Group("/blocks", auth)
	blocks.Get("/", h.Messaging.ListBlocks)
	blocks.Post("/", h.Messaging.BlockUser)
	blocks.Delete("/:userId", h.Messaging.UnblockUser)

	app.Post("/reports", auth, h.Messaging.SubmitReport)

	status := app.Group("/status", auth)
	status.Post("/:id/star", h.Status.ToggleStar)
	status.Patch("/:id/share", h.Status.SetShare)

	users := app.Group("/users", auth)
	users.Get("/me/permissions", h.Admin.MyPermissions)
	users.Post("/me/milestones/check", h.Admin.CheckMilestones)
	users.Get("/:id/statuses", h.Status.ListByUser)

	admin := app.Group("/admin", auth)
	admin.Get("/dashboard", h.Admin.Dashboard)
	admin.Post("/users/:id/penalties", h.Admin.ApplyPenalty)
	admin.Delete("/users/:id/roles/:role", h.Admin.RevokeRole)
	admin.Post("/users/:id/suspend", h.Admin.Suspend)

	app.Use("/ws", auth, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		h.Websocket.HandleConnection(context.Background(), c)
	}))
}
