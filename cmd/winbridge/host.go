package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/winbridge/internal/config"
	"github.com/1broseidon/winbridge/internal/host"
	"github.com/1broseidon/winbridge/internal/logging"
	"github.com/1broseidon/winbridge/internal/platform"
)

func runHost(args []string) int {
	fs := flag.NewFlagSet("host", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winbridge host [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the native host in the foreground. Bridges connect over the")
		fmt.Fprintln(os.Stderr, "unix socket; window events are broadcast to every bridge.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	configPath := fs.String("path", "", "Config file path (default: ~/.config/winbridge/config.yaml)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "host takes no arguments")
		fs.Usage()
		return 2
	}

	var cfg *config.Config
	var err error
	if *configPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFromPath(*configPath)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	backend, err := platform.NewBackend(cfg.PollInterval())
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to the display server")
		return 1
	}
	defer backend.Disconnect()

	path, err := socketPath(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve socket path")
		return 1
	}

	srv := host.NewServer(path, backend, cfg, logging.Component(logger, "host"))
	if err := srv.Start(); err != nil {
		logger.Error().Err(err).Msg("failed to start host")
		return 1
	}
	defer srv.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info().Str("signal", sig.String()).Msg("shutting down")

	return 0
}
