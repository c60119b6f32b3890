package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MarketDash/internal/di"
	"MarketDash/internal/usecase"
	"MarketDash/pkg/config"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitSetup  = 2
)

func main() {
	os.Exit(cli(os.Args[1:], os.Stdout))
}

// cli parses args, loads config and runs one action. Region lines go to stdout.
func cli(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("marketdash-cli", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file path (empty for defaults)")
	action := fs.String("action", usecase.ActionLoad, "action to run: load, refresh or predict")
	if err := fs.Parse(args); err != nil {
		return exitSetup
	}

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Printf("config load failed: %v", err)
		return exitSetup
	}
	// Keep stdout for the dashboard lines.
	cfg.Log.Output = "stderr"

	return run(cfg, *action, stdout)
}

func run(cfg *config.Config, action string, stdout io.Writer) int {
	dash, cleanup, err := di.InitializeCLI(cfg, stdout)
	if err != nil {
		log.Printf("initialization failed: %v", err)
		return exitSetup
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if action == usecase.ActionLoad {
		err = dash.Init(ctx)
	} else {
		err = dash.Run(ctx, action)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailed
	}
	return exitOK
}
