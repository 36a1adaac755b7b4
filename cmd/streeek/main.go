package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/bizilabs/streeek/internal/client/cli"
	"github.com/bizilabs/streeek/internal/client/config"
	"github.com/bizilabs/streeek/internal/logging"
)

func main() {
	cfg := config.LoadConfig(os.Args[1:])
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
