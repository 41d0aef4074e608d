package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hrms-portal/internal/event"
	"hrms-portal/internal/notify"
)

func newWatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print record changes as they happen",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err := c.api.Watch(ctx, func(e event.Event) {
				c.notifier.Notify(notify.FromEvent(e))
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
