package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mawja-backend/internal/config"
	"mawja-backend/internal/export"
	"mawja-backend/internal/handler"
	"mawja-backend/internal/model"
	"mawja-backend/internal/service"
	"mawja-backend/internal/session"
	"mawja-backend/internal/storage"
	"mawja-backend/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	kv, err := newKV(cfg.Storage)
	if err != nil {
		logger.Fatalf("Failed to init storage: %v", err)
	}

	store := session.NewStore(kv, cfg.Session.MaxMessages)

	// a missing credential is not fatal: the server runs and surfaces
	// not-configured to the client, which sends the user to settings
	completion, err := model.NewCompletionModel(context.Background())
	if err != nil {
		logger.Errorf("Completion model unavailable: %v", err)
	}

	assistant := service.NewAssistant(store, completion, cfg.Session)

	chatHandler := handler.NewChatHandler(assistant, store)
	responseHandler := handler.NewResponseHandler()
	exportHandler := handler.NewExportHandler(export.NewClient(cfg.Export))

	router := setupRouter(cfg, chatHandler, responseHandler, exportHandler)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		logger.Infof("Server listening on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")
	if err := server.Close(); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}

func newKV(cfg config.StorageConfig) (storage.KV, error) {
	if cfg.Type == "memory" {
		return storage.NewMemoryStore(), nil
	}
	return storage.NewFileStore(cfg.DataDir)
}

func setupRouter(cfg *config.Config, chatHandler *handler.ChatHandler, responseHandler *handler.ResponseHandler, exportHandler *handler.ExportHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	api := router.Group("/api")
	{
		assistant := api.Group("/assistant")
		{
			assistant.POST("/send", chatHandler.SendMessage)
			assistant.POST("/switch", chatHandler.SwitchSession)
		}

		sessions := api.Group("/sessions")
		{
			sessions.GET("/:document_id", chatHandler.ListSessions)
			sessions.GET("/:document_id/:section/messages", chatHandler.GetMessages)
			sessions.DELETE("/:document_id/:section", chatHandler.ClearSession)
			sessions.POST("/copy", chatHandler.CopyMessage)
		}

		api.POST("/response/process", responseHandler.Process)
		api.POST("/editor/nodes", responseHandler.ToNodes)
		api.POST("/export", exportHandler.Export)
	}

	return router
}
