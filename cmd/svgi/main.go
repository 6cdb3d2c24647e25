// Package main is the entry point for the svgi CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/opmodel/svgi/internal/cmd"
	oerrors "github.com/opmodel/svgi/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rootCmd := cmd.NewRootCmd()

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	// Only print if the command layer hasn't already printed it
	var exitErr *oerrors.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Printed {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(oerrors.ExitCodeFromError(err))
}
