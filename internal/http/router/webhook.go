package router

import (
	"github.com/gin-gonic/gin"

	"supportbot.app/hub/internal/http/handler/webhook"
)

func WebhookRouter(router *gin.RouterGroup, handler *webhook.GitLabWebhookHandler) {
	router.POST("/gitlab", handler.HandleEvent)
}
