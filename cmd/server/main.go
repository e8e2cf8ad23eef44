package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/agenthands/eventlens/internal/config"
	"github.com/agenthands/eventlens/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.toml"
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.LogFile != "" {
		rotate := &lumberjack.Logger{
			Filename:   cfg.Server.LogFile,
			MaxSize:    cfg.Server.LogMaxSizeMB,
			MaxBackups: cfg.Server.LogMaxBackups,
		}
		defer rotate.Close()
		w := io.MultiWriter(os.Stderr, rotate)
		log.SetOutput(w)
		gin.DefaultWriter = w
		gin.DefaultErrorWriter = w
	}
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, _, cleanup, err := server.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer cleanup()

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: srv.SetupRouter(),
	}
	go func() {
		log.Printf("Starting server on port %s (store: %s)", cfg.Server.Port, cfg.Store.Driver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown failed: %v", err)
	}
}
