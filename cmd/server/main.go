package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cityvoice/cityvoice-backend/internal/config"
	"github.com/cityvoice/cityvoice-backend/internal/db"
	"github.com/cityvoice/cityvoice-backend/internal/goroutine"
	httpHandlers "github.com/cityvoice/cityvoice-backend/internal/http/handlers"
	httpRouter "github.com/cityvoice/cityvoice-backend/internal/http/router"
	"github.com/cityvoice/cityvoice-backend/internal/logger"
	"github.com/cityvoice/cityvoice-backend/internal/repository"
	"github.com/cityvoice/cityvoice-backend/internal/service"
	"github.com/cityvoice/cityvoice-backend/internal/storage"
	"github.com/cityvoice/cityvoice-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера.
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	photoStorage, err := storage.NewPhotoStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	reportRepo := repository.NewReportRepository(dbConn)
	commentRepo := repository.NewCommentRepository(dbConn)
	mediaRepo := repository.NewMediaRepository(dbConn)

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	mediaService := service.NewMediaService(mediaRepo, photoStorage)
	reportService := service.NewReportService(reportRepo, mediaService)
	commentService := service.NewCommentService(commentRepo, reportRepo)

	// Живая лента.
	hub := ws.NewHub()
	go hub.Run()
	reportService.SetPublisher(hub)
	commentService.SetPublisher(hub)

	// Фоновая очистка протухших сессий.
	goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
		ticker := time.NewTicker(cfg.SessionPurgeTick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				purged, err := authService.PurgeExpiredSessions(ctx)
				if err != nil {
					logger.Log.WithError(err).Error("не удалось очистить протухшие сессии")
					continue
				}
				if purged > 0 {
					logger.Log.Infof("удалено протухших сессий: %d", purged)
				}
			}
		}
	})

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	reportHandler := httpHandlers.NewReportHandler(reportService)
	commentHandler := httpHandlers.NewCommentHandler(commentService)
	mediaHandler := httpHandlers.NewMediaHandler(mediaService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, reportHandler, commentHandler, mediaHandler, wsHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		hub.Shutdown()
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

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
