package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jkosta95/recipe-app-api/internal/app"
	"github.com/jkosta95/recipe-app-api/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("backend", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "config.yaml", "path to configuration file (YAML)")
		waitForDB  = fs.Bool("wait-for-db", true, "block until the database is available before serving")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a := app.InitApp(cfg)
	defer a.Close()

	if *waitForDB {
		if err := a.WaitForDB(ctx, stdout); err != nil {
			return fmt.Errorf("wait for database: %w", err)
		}
	}

	return a.Run(ctx)
}
