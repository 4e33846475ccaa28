// Command server runs the interpolice HTTP API.
//
// Configuration is read from config.yaml (override path with CONFIG_PATH)
// and environment variables. Requires DATABASE_DSN and AUTH_JWT_SECRET.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/interpolice/interpolice-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
