package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"supportbot.app/hub/common/id"
	"supportbot.app/hub/common/logger"
	"supportbot.app/hub/common/otel"
	"supportbot.app/hub/core/config"
	"supportbot.app/hub/core/db"
	"supportbot.app/hub/internal/cache"
	"supportbot.app/hub/internal/http/middleware"
	httprouter "supportbot.app/hub/internal/http/router"
	"supportbot.app/hub/internal/queue"
	"supportbot.app/hub/internal/service"
	"supportbot.app/hub/internal/service/chat"
	"supportbot.app/hub/internal/service/issue_tracker"
	"supportbot.app/hub/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "hub server starting", "env", cfg.Env, "guild_id", cfg.Discord.GuildID)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisClient, err := cache.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Redis.Stream)

	eventProducer := queue.NewRedisProducer(redisClient, cfg.Redis.Stream, slog.Default())
	defer eventProducer.Close()

	session, err := chat.NewSession(cfg.Discord.BotToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create discord session", "error", err)
		os.Exit(1)
	}
	chatService := chat.NewDiscordChatService(session, cfg.Discord.GuildID)

	var tracker issue_tracker.IssueTrackerService
	if cfg.GitLab.Enabled() {
		tracker, err = issue_tracker.NewGitLabIssueTrackerService(cfg.GitLab.BaseURL, cfg.GitLab.Token, cfg.GitLab.Group)
		if err != nil {
			slog.ErrorContext(ctx, "failed to create gitlab client", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "gitlab integration enabled", "group", cfg.GitLab.Group)
	} else {
		slog.InfoContext(ctx, "gitlab integration disabled (no token configured)")
	}

	services := service.NewServices(
		cfg,
		store.NewStores(database.Querier()),
		chatService,
		tracker,
		cache.NewProfileCache(redisClient, cfg.Cache.ProfileTTL),
		cache.NewDeliveryLog(redisClient, cfg.Cache.DeliveryTTL),
		eventProducer,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		Timezone: cfg.Support.Timezone,
	})

	return router
}

const banner = `
 _           _
| |__  _   _| |__
| '_ \| | | | '_ \
| | | | |_| | |_) |
|_| |_|\__,_|_.__/  server
`
