package ws

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Upgrade rejects plain HTTP requests on the websocket route.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler keeps a websocket open and subscribed to hub events. Incoming
// messages are read only to notice disconnects.
func Handler(hub *Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		if !hub.Register(c) {
			c.Close()
			return
		}
		defer hub.Unregister(c)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	})
}
