package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcmexdev/storefront/cmd/storefront/app"
	"github.com/jcmexdev/storefront/configs"
	"github.com/jcmexdev/storefront/internal/shell"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding base.yaml and <env>.yaml")
	env := flag.String("env", os.Getenv("STOREFRONT_ENV"), "config overlay to apply, e.g. dev")
	flag.Parse()

	cfg, err := configs.Load(*configDir, *env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	store, cleanup, err := app.InitWithConfig(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	p := tea.NewProgram(shell.New(ctx, store.Shell), tea.WithContext(ctx))
	_, err = p.Run()
	stop()
	cleanup()

	if err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
