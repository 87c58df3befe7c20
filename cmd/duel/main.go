// Package main plays Lua duel scenarios against the fight engine.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	duelcmd "github.com/Mouthless-Stoat/Leshy/internal/cmd/duel"
	platformcmd "github.com/Mouthless-Stoat/Leshy/internal/platform/cmd"
	"github.com/Mouthless-Stoat/Leshy/internal/platform/config"
)

func main() {
	cfg, err := duelcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceDuel, func(ctx context.Context) error {
		return duelcmd.Run(ctx, cfg, os.Stdout, os.Stderr)
	})
	if err != nil {
		config.Exitf("Error: %v", err)
	}
}
