package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"smartcart/frontend/scan"
	httpserver "smartcart/infrastructure/http"
	"smartcart/infrastructure/sqlite"
	"smartcart/infrastructure/state"
	"smartcart/infrastructure/store"
	"smartcart/infrastructure/vision"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", slog.Any("err", err))
	}

	addr := getenv("APP_ADDR", ":8080")
	dbPath := getenv("SQLITE_PATH", "smartcart.db")

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	opts := state.DefaultOptions()
	if getenv("PREFILL_FROM_LAST_SEEN", "1") == "0" {
		opts.PrefillFromLastSeen = false
	}
	app, err := state.Load(context.Background(), store.New(db), opts)
	if err != nil {
		log.Fatalf("load app state: %v", err)
	}

	scans := scan.NewSessions(10 * time.Minute)

	var namer vision.Namer
	if g := vision.NewGeminiNamer(os.Getenv("GEMINI_API_KEY")); g != nil {
		namer = g
	} else {
		slog.Info("GEMINI_API_KEY not set; name suggestions disabled")
	}

	server := httpserver.NewServer(addr, db, app, scans, namer)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("smartcart listening on %s", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
