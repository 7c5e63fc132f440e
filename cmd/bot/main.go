package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"gratitude-bot/internal/auth"
	"gratitude-bot/internal/config"
	"gratitude-bot/internal/conversation"
	"gratitude-bot/internal/dispatch"
	"gratitude-bot/internal/health"
	"gratitude-bot/internal/scheduler"
	"gratitude-bot/internal/session"
	"gratitude-bot/internal/storage"
	"gratitude-bot/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("failed to resolve timezone: %v", err)
	}
	if cfg.AdminUserID == 0 {
		log.Printf("⚠️ ADMIN_USER is not set, export and clean are disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open notes db: %v", err)
	}
	defer store.Close()

	bot, err := telegram.New(cfg.Token())
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	sessions := session.NewManager()
	now := func() time.Time { return time.Now().In(loc) }
	engine := conversation.NewEngine(store, bot, auth.New(cfg.AdminUserID), sessions, now)

	sched := scheduler.New(loc)
	if err := sched.AddJob("retention prune", cfg.PruneSchedule, func(ctx context.Context) error {
		n, err := engine.Prune(ctx)
		if err == nil && n > 0 {
			log.Printf("🧹 Daily prune removed %d notes", n)
		}
		return err
	}); err != nil {
		log.Fatalf("failed to schedule prune: %v", err)
	}
	if err := sched.AddJob("session eviction", "@hourly", func(context.Context) error {
		if n := sessions.EvictStale(cfg.SessionTTL); n > 0 {
			log.Printf("Evicted %d stale sessions", n)
		}
		return nil
	}); err != nil {
		log.Fatalf("failed to schedule session eviction: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go func() {
		if err := health.Serve(ctx, cfg.HealthAddr); err != nil {
			log.Printf("health endpoint stopped: %v", err)
		}
	}()

	pool := dispatch.New(context.WithoutCancel(ctx), cfg.Workers, cfg.QueueSize, engine.Handle)
	defer pool.Close()

	log.Printf("Bot started with %d workers", cfg.Workers)
	bot.Start(ctx, pool)
	log.Printf("Shutting down")
}
