// Package cli provides the command-line interface for StockMitra.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkhatkar/stockmitra/internal/display"
)

// Run executes the root command and exits non-zero on failure.
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		display.Error(err)
		os.Exit(1)
	}
}
