package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taskmeter/taskmeter/packages/report"
	"github.com/taskmeter/taskmeter/packages/stats"
	"github.com/taskmeter/taskmeter/packages/status"
)

var watchFlag bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render tables and timing stats from the status file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		render := func() error {
			data, err := status.Load(cfg.StatusPath)
			if err != nil {
				return err
			}

			finished := tasksFromStatus(data)
			if len(finished) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no task records in", cfg.StatusPath)
				return nil
			}

			console := report.NewConsole(
				report.WithWriter(cmd.OutOrStdout()),
				report.WithNoColor(noColorFlag))

			console.Section("Tasks")
			console.Table(report.TasksTable(finished))

			minMax, err := report.TasksMinMaxTable(finished)
			if err != nil {
				return err
			}
			console.Table(minMax)

			waiting, err := stats.WaitingTimes(finished)
			if err != nil {
				return err
			}
			service, err := stats.ServiceTimes(finished)
			if err != nil {
				return err
			}

			console.Section("Timing")
			console.StatsLine("waiting time", waiting)
			console.StatsLine("service time", service)
			return nil
		}

		if err := render(); err != nil {
			return err
		}

		if !watchFlag {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err = status.Watch(ctx, cfg.StatusPath, func() {
			if err := render(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "render failed: %v\n", err)
			}
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	reportCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "re-render whenever the status file changes")
}
