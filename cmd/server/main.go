package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignatzorin/marketplace-client/internal/availability"
	"github.com/ignatzorin/marketplace-client/internal/config"
	"github.com/ignatzorin/marketplace-client/internal/gateway"
	httpHandlers "github.com/ignatzorin/marketplace-client/internal/http/handlers"
	httpRouter "github.com/ignatzorin/marketplace-client/internal/http/router"
	"github.com/ignatzorin/marketplace-client/internal/lifecycle"
	"github.com/ignatzorin/marketplace-client/internal/logger"
	"github.com/ignatzorin/marketplace-client/internal/projection"
	"github.com/ignatzorin/marketplace-client/internal/session"
	"github.com/ignatzorin/marketplace-client/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Сессия поднимается из файла: credential переживает перезапуск.
	sess, err := session.NewStore(cfg.SessionFile)
	if err != nil {
		log.Fatalf("main: не удалось подготовить хранилище сессии: %v", err)
	}

	// Клиент удалённого API маркетплейса.
	api := gateway.NewClient(cfg.APIBaseURL, sess, cfg.RequestTimeout, cfg.MutationLimit, cfg.MutationPeriod)

	// Доменные сервисы.
	lifecycleService := lifecycle.NewService(api, sess)
	projector := projection.NewProjector(api)
	planner := availability.NewPlanner(api)

	// Мост live-сообщений: удалённый поток -> локальные страницы.
	hub := ws.NewHub(ctx)
	go hub.Run()
	bridge := ws.NewBridge(cfg.APIWSURL, sess, hub)
	go bridge.Run(ctx)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(api, sess)
	conversationHandler := httpHandlers.NewConversationHandler(lifecycleService, projector, api)
	ratingHandler := httpHandlers.NewRatingHandler(api)
	availabilityHandler := httpHandlers.NewAvailabilityHandler(planner)
	serviceHandler := httpHandlers.NewServiceHandler(api)
	profileHandler := httpHandlers.NewProfileHandler(api, cfg.MaxUploadSizeMB)
	healthHandler := httpHandlers.NewHealthHandler()
	wsHandler := httpHandlers.NewWSHandler(hub, cfg.AllowedOrigins)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, sess, authHandler, conversationHandler, ratingHandler, availabilityHandler, serviceHandler, profileHandler, healthHandler, wsHandler)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}
