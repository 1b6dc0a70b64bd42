package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(roomController *RoomController, sessionController *SessionController, allowOrigins []string) *gin.Engine {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = allowOrigins
	config.AllowCredentials = true
	config.AllowHeaders = []string{
		"Content-Type",
		"Origin",
		"Accept",
		headerSessionID,
		headerSessionCreated,
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	router.Use(cors.New(config))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	if sessionController != nil {
		api.GET("/session", sessionController.GetSession)
	}

	if roomController != nil {
		rooms := api.Group("/rooms")
		rooms.POST("", roomController.CreateRoom)
		rooms.GET("", roomController.ListRooms)
		rooms.GET("/:roomID", roomController.GetRoom)
		rooms.POST("/:roomID/join", roomController.JoinRoom)
		rooms.GET("/:roomID/state", roomController.RoomState)
		rooms.GET("/:roomID/players", roomController.ListPlayers)
		rooms.POST("/:roomID/remove-user", roomController.RemoveUser)
		rooms.DELETE("/:roomID", roomController.DeleteRoom)
		rooms.GET("/:roomID/watch", roomController.WatchRoom)
	}

	return router
}
