package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/finkeeper/internal/client/cli"
	"github.com/dmitrijs2005/finkeeper/internal/client/config"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	// stdout belongs to the REPL
	logger := logging.New(cfg.LogLevel, "text", os.Stderr)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
