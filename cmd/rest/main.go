package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"re-ad-be/internal/bootstrap"
	"re-ad-be/internal/config"
	"re-ad-be/internal/server"
	"re-ad-be/internal/tracer"
	"re-ad-be/pkg/database"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Auth.JwtSecret == "" {
		log.Fatal("Error: JWT_SECRET is not set")
	}

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	srv := server.New(cfg, container)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 5. Run server and background workers until one fails or a signal arrives
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Println("Background: Starting Summary Consumer...")
		return container.ConsumerService.Consume(gctx)
	})

	g.Go(func() error {
		log.Println("Background: Starting WebSocket Hub...")
		return container.WebSocketHub.Run(gctx)
	})

	g.Go(srv.Run)

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")
		return srv.Shutdown()
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Println("✅ Server stopped")
}
