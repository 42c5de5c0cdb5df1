package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"supportbot.app/hub/internal/http/handler"
	"supportbot.app/hub/internal/http/handler/webhook"
	"supportbot.app/hub/internal/mapper"
	"supportbot.app/hub/internal/service"
)

type RouterConfig struct {
	Timezone *time.Location
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		dashboardHandler := handler.NewDashboardHandler(services.Dashboard(), cfg.Timezone)
		DashboardRouter(v1.Group("/dashboard"), dashboardHandler)

		discussionHandler := handler.NewDiscussionHandler(services.Discussions())
		AdminRouter(v1.Group("/admin"), discussionHandler)
	}

	gitlabWebhookHandler := webhook.NewGitLabWebhookHandler(services.EventIngest(), mapper.NewGitLabEventMapper())
	WebhookRouter(router.Group("/webhooks"), gitlabWebhookHandler)
}
