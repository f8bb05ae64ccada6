package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/cli"
	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/config"
)

// Version and BuildDate are set at build time via -ldflags
var (
	Version   = "v0.1.0"
	BuildDate = ""
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx, Version, BuildDate, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %s\n", config.FormatError(err, false))
		os.Exit(1)
	}
}
