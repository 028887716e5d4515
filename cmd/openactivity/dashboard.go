package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/janekbaraniewski/openactivity/internal/config"
	"github.com/janekbaraniewski/openactivity/internal/core"
	"github.com/janekbaraniewski/openactivity/internal/dashboard"
	"github.com/janekbaraniewski/openactivity/internal/dataset"
	"github.com/janekbaraniewski/openactivity/internal/tui"
)

func runDashboard(parent context.Context, opts *rootOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	if err := tui.LoadThemes(config.ConfigDir()); err != nil {
		log.WithError(err).Warn("loading themes")
	}
	tui.SetThemeByName(opts.cfg.Theme)

	ds, err := opts.loadDataset()
	if err != nil {
		return err
	}

	session := dashboard.NewSession(ds, opts.sessionOptions(string(tui.ActiveTheme().Heat)))
	model := tui.NewModel(session)
	model.SetOnReload(func() (core.Dataset, error) {
		return dataset.Load(opts.cfg.DataPath)
	})
	model.SetOnThemeChange(func(name string) error {
		return config.SaveThemeTo(opts.configPath, name)
	})

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	program := tea.NewProgram(model, tea.WithAltScreen())

	err = dataset.Watch(ctx, opts.cfg.DataPath, dataset.DefaultDebounce, func(ds core.Dataset, err error) {
		program.Send(tui.DatasetMsg{Dataset: ds, Err: err})
	})
	if err != nil {
		log.WithError(err).Warn("dataset: live reload disabled")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
			program.Quit()
		case <-ctx.Done():
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
