package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/duskydesk/duskycc/internal/command"
	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/logger"
	"github.com/duskydesk/duskycc/internal/settings"
)

// Process-level indirections, swapped out in tests.
var (
	isTerminal      = term.IsTerminal
	launchCommand   = command.Launch
	saveSecret      = settings.SaveSecret
	deleteSecret    = settings.DeleteSecret
	hasSecret       = settings.HasSecret
	promptForSecret = settings.PromptForSecret
)

// loadConfig reads the configuration document from the --config path,
// falling back to the default location.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// countRows counts every leaf item in a layout tree, descending into
// navigation subtrees and expander children.
func countRows(sections []config.Section) int {
	n := 0
	for _, section := range sections {
		n += countItems(section.Items)
	}
	return n
}

func countItems(items []config.Item) int {
	n := 0
	for _, item := range items {
		n++
		n += countRows(item.Layout)
		n += countItems(item.Items)
	}
	return n
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("Cancellation requested")
		cancel()
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
