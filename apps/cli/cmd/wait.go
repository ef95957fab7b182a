package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskmeter/taskmeter/packages/api"
	"github.com/taskmeter/taskmeter/packages/report"
	"github.com/taskmeter/taskmeter/packages/stats"
	"github.com/taskmeter/taskmeter/packages/status"
	"github.com/taskmeter/taskmeter/packages/tasks"
)

var (
	baseAddrFlag string
	timeoutFlag  time.Duration
	stepFlag     time.Duration
	validateFlag bool
)

var waitCmd = &cobra.Command{
	Use:   "wait <task-href>...",
	Short: "Poll tasks until they reach a terminal state",
	Long: `Polls each task status href in order until the task reports a terminal
state (failed, cancelled or completed) or the whole-batch deadline runs
out. Finished task records are appended to the status file, and timing
statistics are printed at the end.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if baseAddrFlag != "" {
			cfg.BaseAddr = baseAddrFlag
		}
		if !cmd.Flags().Changed("timeout") {
			timeoutFlag = cfg.Timeout()
		}
		if !cmd.Flags().Changed("step") {
			stepFlag = cfg.Step()
		}

		sess, err := status.Open(cfg.StatusPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := sess.Close(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed to save status data: %v\n", err)
			}
		}()

		client := api.NewClient(cfg.BaseAddr)
		poller := tasks.NewPoller(client,
			tasks.WithTimeout(timeoutFlag),
			tasks.WithStep(stepFlag),
			tasks.WithValidation(validateFlag))

		out, err := poller.WaitForTasks(cmd.Context(), args)
		if err != nil {
			return err
		}

		finished := make([]*tasks.Task, 0, len(out))
		timedOut := 0
		for _, t := range out {
			if t == nil {
				timedOut++
				continue
			}
			finished = append(finished, t)
			sess.Append(t.AsMap())
		}

		console := report.NewConsole(
			report.WithWriter(cmd.OutOrStdout()),
			report.WithNoColor(noColorFlag))
		console.Timeouts(timedOut)

		if len(finished) == 0 {
			return nil
		}

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
	},
}

// tasksFromStatus decodes status-file entries back into task records,
// skipping entries that are not task-shaped.
func tasksFromStatus(data []any) []*tasks.Task {
	out := make([]*tasks.Task, 0, len(data))
	for _, entry := range data {
		raw, err := json.Marshal(entry)
		if err != nil {
			continue
		}
		t := tasks.FromJSON(raw)
		if t.Href == "" && t.State == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

func init() {
	waitCmd.Flags().StringVar(&baseAddrFlag, "base-addr", "", "task service address (default from config)")
	waitCmd.Flags().DurationVar(&timeoutFlag, "timeout", tasks.DefaultTimeout, "whole-batch polling budget")
	waitCmd.Flags().DurationVar(&stepFlag, "step", tasks.DefaultStep, "pause between polls")
	waitCmd.Flags().BoolVar(&validateFlag, "validate", false, "validate task payloads against the expected schema")
}
