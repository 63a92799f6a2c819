package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/campus-bot/internal/bot"
	"github.com/Spok95/campus-bot/internal/config"
	"github.com/Spok95/campus-bot/internal/dialog"
	"github.com/Spok95/campus-bot/internal/domain/attendance"
	"github.com/Spok95/campus-bot/internal/domain/timetable"
	"github.com/Spok95/campus-bot/internal/domain/users"
	"github.com/Spok95/campus-bot/internal/infra/db"
	httpx "github.com/Spok95/campus-bot/internal/infra/http"
	"github.com/Spok95/campus-bot/internal/infra/logger"
	"github.com/Spok95/campus-bot/internal/tracker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"
)

func runMigrations(dsn, dir string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, dir)
}

func main() {
	// .env необязателен: в проде переменные приходят из окружения
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env, cfg.App.LogFormat)
	slog.SetDefault(log)

	if err := runMigrations(cfg.Postgres.DSN, cfg.Postgres.Migrations); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Warn("unknown timezone, falling back to UTC", "tz", cfg.App.Timezone, "err", err)
		loc = time.UTC
	}

	svc := tracker.New(log, attendance.NewRepo(pool), timetable.NewRepo(pool), cfg.Policy())
	svc.UseLocation(loc)
	log.Info("attendance policy", "threshold", cfg.Attendance.Threshold, "match", cfg.Attendance.Match)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram init failed", "err", err)
		return
	}
	log.Info("telegram authorized", "username", api.Self.UserName)

	if cfg.Telegram.AdminChatID != 0 {
		if _, err := api.Send(tgbotapi.NewMessage(cfg.Telegram.AdminChatID, "Бот запущен ✅")); err != nil {
			log.Warn("admin notify failed", "err", err)
		}
	}

	b := bot.New(api, log, users.NewRepo(pool), dialog.NewRepo(pool), svc)
	go func() {
		if err := b.Run(ctx, cfg.Telegram.PollTimeout); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("bot stopped", "err", err)
		}
	}()
	log.Info("bot started")

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, pool)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
