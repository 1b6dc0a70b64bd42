package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	httpapi "listening-room/internal/api/http"
	"listening-room/internal/config"
	"listening-room/internal/presence"
	"listening-room/internal/repository"
	"listening-room/internal/service"
	"listening-room/lib/logger/slogpretty"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	tracker := presence.NewTracker(presence.WithWindow(cfg.Rooms.ActiveWindow))
	roomRepo := repository.NewInMemoryRoomRepository()

	roomService := service.NewRoomService(roomRepo, tracker, log)
	sessionService := service.NewSessionService(log)

	reaper := service.NewReaper(roomService, tracker, log,
		service.WithInterval(cfg.Rooms.ReapInterval),
		service.WithEmptyGrace(cfg.Rooms.EmptyGrace),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := reaper.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("reaper stopped", slog.Any("error", err))
		}
	}()

	roomController := httpapi.NewRoomController(roomService, log, cfg.Rooms.WatchPush)
	sessionController := httpapi.NewSessionController(sessionService)

	router := httpapi.SetupRouter(roomController, sessionController, cfg.CORS.AllowOrigins)

	log.Info("starting application", slog.String("addr", cfg.HTTP.Address))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
