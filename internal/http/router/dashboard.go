package router

import (
	"github.com/gin-gonic/gin"

	"supportbot.app/hub/internal/http/handler"
)

func DashboardRouter(router *gin.RouterGroup, handler *handler.DashboardHandler) {
	router.GET("", handler.Overview)
	router.GET("/questions", handler.Questions)
	router.GET("/contributors", handler.Contributors)
}

func AdminRouter(router *gin.RouterGroup, handler *handler.DiscussionHandler) {
	router.POST("/discussions", handler.Create)
}
