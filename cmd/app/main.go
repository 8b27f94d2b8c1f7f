package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"yatube/internal/config"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		config.Logger.Error("command failed", zap.Error(err))
		// the logger is a no-op when settings could not be loaded
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
