// Package main imports YAML card catalogs into the Leshy database.
package main

import (
	"context"
	"flag"
	"os"

	platformcmd "github.com/Mouthless-Stoat/Leshy/internal/platform/cmd"
	"github.com/Mouthless-Stoat/Leshy/internal/platform/config"
	"github.com/Mouthless-Stoat/Leshy/internal/tools/importer"
)

func main() {
	cfg, err := importer.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	err = platformcmd.RunWithTelemetry(context.Background(), platformcmd.ServiceCatalogImporter, func(ctx context.Context) error {
		return importer.Run(ctx, cfg, os.Stdout)
	})
	if err != nil {
		config.Exitf("Error: %v", err)
	}
}
