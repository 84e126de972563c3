package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"

	"github.com/SpencerPresley/ea-woc-league/internal/app"
	"github.com/SpencerPresley/ea-woc-league/internal/config"
	"github.com/SpencerPresley/ea-woc-league/internal/platform/logging"
)

func main() {
	skipInvalid := flag.Bool("skip-invalid", false, "fold only the match payloads that validate instead of failing the whole run")
	pretty := flag.Bool("pretty", false, "indent the JSON report")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *skipInvalid, *pretty); err != nil {
		logger.Error("report run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger, skipInvalid, pretty bool) error {
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Close(shutdownCtx); err != nil {
			logger.Warn("shutdown incomplete", "error", err)
		}
	}()

	result, err := a.Run(ctx, skipInvalid)
	if err != nil {
		return err
	}

	var out []byte
	if pretty {
		out, err = sonic.ConfigDefault.MarshalIndent(result, "", "  ")
	} else {
		out, err = sonic.Marshal(result)
	}
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
