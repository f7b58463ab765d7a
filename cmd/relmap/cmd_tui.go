package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/N3moAhead/relmap/internal/autosave"
	"github.com/N3moAhead/relmap/internal/tui"
	"github.com/N3moAhead/relmap/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	saver := autosave.New(a.store.Flush, a.cfg.AutosaveInterval, a.logger)
	saver.Start(ctx)
	defer saver.Stop()

	if a.cfg.Watch {
		w, err := watch.New(a.cfg.DataFile, a.store, 0, a.logger)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			a.logger.Warn("file watching disabled", zap.Error(err))
		}
		defer w.Stop()
	}

	return tui.Run(a.store)
}
