package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	cameraclient "github.com/ohs25-2-misoten/agaru-up-api/internal/clients/camera"
	s3client "github.com/ohs25-2-misoten/agaru-up-api/internal/clients/s3"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/config"
	camerahandler "github.com/ohs25-2-misoten/agaru-up-api/internal/http-server/handlers/cameras"
	reporthandler "github.com/ohs25-2-misoten/agaru-up-api/internal/http-server/handlers/reports"
	videohandler "github.com/ohs25-2-misoten/agaru-up-api/internal/http-server/handlers/videos"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/http-server/middleware/logger"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/lib/sl"
	cameraservice "github.com/ohs25-2-misoten/agaru-up-api/internal/services/cameras"
	reportservice "github.com/ohs25-2-misoten/agaru-up-api/internal/services/reports"
	videoservice "github.com/ohs25-2-misoten/agaru-up-api/internal/services/videos"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/storage/sqlite"
	camerastorage "github.com/ohs25-2-misoten/agaru-up-api/internal/storage/sqlite/cameras"
	videostorage "github.com/ohs25-2-misoten/agaru-up-api/internal/storage/sqlite/videos"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting application", slog.String("env", cfg.Env))

	storage, err := sqlite.New(cfg.DB)
	if err != nil {
		panic(err)
	}

	videoStore, err := s3client.New(cfg.Storage)
	if err != nil {
		panic(err)
	}

	captureClient := cameraclient.New(cfg.Capture)

	videoStorage := videostorage.New(storage)
	cameraStorage := camerastorage.New(storage)

	videoService := videoservice.New(log, videoStorage)
	cameraService := cameraservice.New(log, cameraStorage)
	reportService := reportservice.New(log, captureClient, videoStore, videoStorage, cfg.Storage.PublicURL)

	videoHandler := videohandler.New(log, videoService)
	cameraHandler := camerahandler.New(log, cameraService)
	reportHandler := reporthandler.New(log, reportService)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(logger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/videos", videoHandler.Search)
	router.Get("/tags", videoHandler.Tags)
	router.Post("/videos/bulk", videoHandler.Bulk)
	router.Get("/cameras/{id}", cameraHandler.Camera)
	router.Post("/report", reportHandler.Report)

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:        cfg.HTTPServer.Address,
		Handler:     router,
		ReadTimeout: cfg.HTTPServer.Timeout,
		// A report holds its connection for as long as the capture fetch
		// runs, so the write timeout must cover the full capture window.
		WriteTimeout: cfg.Capture.Timeout + cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", sl.Err(err))
		}
	}()

	log.Info("server started")

	<-done
	log.Info("stopping server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("failed to stop server", sl.Err(err))

		return
	}

	if err := storage.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("server stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
