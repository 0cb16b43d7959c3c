package routes

import (
	"tasknest-app/tasknest/services"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes sets up the live event stream endpoint. The service
// does its own token check during the handshake, so the route group is not
// wrapped in the auth middleware.
func RegisterWebSocketRoutes(router *gin.Engine, webSocketService services.WebSocketServiceInterface) {
	router.GET("/ws", func(c *gin.Context) { webSocketService.HandleConnection(c) })
}
