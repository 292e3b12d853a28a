package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Webhook *WebhookHandler
	AppName string
}

// Router registra las rutas del servidor.
func Router(app *fiber.App, deps RouterDeps) {
	// Salud (lo consulta la plataforma de despliegue)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "Bot Running", "app": deps.AppName})
	})

	app.Post("/webhook", deps.Webhook.Receive)
}
