// Command waitfordb pauses until the database is available.
//
// It is meant to run before the API in container start scripts:
//
//	waitfordb && backend -wait-for-db=false
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
	fs := flag.NewFlagSet("waitfordb", flag.ContinueOnError)
	var (
		configPath  = fs.String("config", "config.yaml", "path to configuration file (YAML)")
		maxAttempts = fs.Int("max-attempts", -1, "give up after this many attempts, 0 waits forever (default from config)")
		delay       = fs.Duration("delay", 0, "pause between attempts (default from config)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *maxAttempts >= 0 {
		cfg.Wait.MaxAttempts = *maxAttempts
	}
	if *delay > 0 {
		cfg.Wait.Delay = *delay
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a := app.InitApp(cfg)
	defer a.Close()

	return a.WaitForDB(ctx, stdout)
}
