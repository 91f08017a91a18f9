// Command resumebt runs resumable behavior trees built by JavaScript.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joeycumines/resumebt/internal/command"
	"github.com/joeycumines/resumebt/internal/config"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		// usage errors and failed trees have already been reported
		if !errors.Is(err, command.ErrUsage) && !errors.Is(err, command.ErrTreeFailed) {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFromPath(configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: ignoring config: %v\n", err)
		cfg = config.NewConfig()
	}
	return command.NewDefaultRegistry(cfg, configPath, version).Dispatch(ctx, args, stdout, stderr)
}
