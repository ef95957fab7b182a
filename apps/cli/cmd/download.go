package cmd

import (
	"github.com/spf13/cobra"

	"github.com/taskmeter/taskmeter/packages/content"
	"github.com/taskmeter/taskmeter/packages/history"
	"github.com/taskmeter/taskmeter/packages/report"
	"github.com/taskmeter/taskmeter/packages/stats"
)

var (
	contentAddrFlag string
	basePathFlag    string
	rateFlag        float64
	historyFlag     string
	labelFlag       string
)

var downloadCmd = &cobra.Command{
	Use:   "download <manifest-url>",
	Short: "Download everything a manifest lists and report latencies",
	Long: `Fetches a manifest (newline-separated "name,checksum,size" records),
downloads every listed file from the content server, verifies each byte
count against the manifest, and prints the latency distribution. A size
mismatch fails the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if contentAddrFlag != "" {
			cfg.ContentAddr = contentAddrFlag
		}

		entries, err := content.FetchManifest(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		opts := []content.DownloaderOption{}
		if rateFlag > 0 {
			opts = append(opts, content.WithRateLimit(rateFlag))
		}
		downloader := content.NewDownloader(cfg.ContentAddr, opts...)

		rec := stats.NewLatencyRecorder()
		durations, err := downloader.DownloadAll(cmd.Context(), basePathFlag, entries, rec)
		if err != nil {
			return err
		}

		console := report.NewConsole(
			report.WithWriter(cmd.OutOrStdout()),
			report.WithNoColor(noColorFlag))
		console.Section("Downloads")
		console.LatencySummary("download latency", rec.Summary())

		seconds := make([]float64, 0, len(durations))
		for _, d := range durations {
			seconds = append(seconds, d.Seconds())
		}
		summary := stats.DataStats(seconds)
		console.StatsLine("download time", summary)

		if historyFlag != "" {
			store, err := history.Open(historyFlag)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.RecordRun(labelFlag, summary); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	downloadCmd.Flags().StringVar(&contentAddrFlag, "content-addr", "", "content server address (default from config)")
	downloadCmd.Flags().StringVar(&basePathFlag, "base", "", "path prefix under the content server")
	downloadCmd.Flags().Float64Var(&rateFlag, "rate", 0, "max downloads per second (0 means unpaced)")
	downloadCmd.Flags().StringVar(&historyFlag, "history", "", "sqlite file to record the run summary into")
	downloadCmd.Flags().StringVar(&labelFlag, "label", "download", "label for the history record")
}
