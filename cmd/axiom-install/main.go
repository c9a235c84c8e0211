package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/doeshing/axiom-install/internal/infrastructure/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := cli.NewRootCmd(cli.Options{Verbose: isVerbose()})
	err := root.ExecuteContext(ctx)
	stop()

	if cli.Reportable(err) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(cli.ExitCode(err))
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("AXIOM_INSTALL_DEBUG"), "1") || strings.EqualFold(os.Getenv("AXIOM_INSTALL_DEBUG"), "true")
}
