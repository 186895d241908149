package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SEA6153/tableview/internal/events"
	"github.com/SEA6153/tableview/internal/printer"
	"github.com/SEA6153/tableview/internal/watch"
)

var (
	watchSession      string
	watchOutputFormat string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow session events in real time",
	Long: `Follow the events a running 'tableview serve' publishes to Redis.

Output Formats:
  default - Human-readable output with timestamps and emojis
  json    - Line-delimited JSON for programmatic processing

Examples:
  # Watch every session
  tableview watch

  # Watch one session
  tableview watch --session 0b7e2a51-4c1d-4e8f-9a3b-5d6c7e8f9a01

  # Export events as JSON
  tableview watch --output=json > events.jsonl`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchSession, "session", "s", "", "Only show events of this session key")
	watchCmd.Flags().StringVarP(&watchOutputFormat, "output", "o", "default", "Output format (default or json)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	outputFormat, err := watch.ParseFormat(watchOutputFormat)
	if err != nil {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", watchOutputFormat),
			[]string{"Valid formats: default, json"},
		)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Redis == nil {
		return printer.Error(
			"redis is not configured",
			"Session events are only published when the configuration has a redis section.",
			[]string{"Add a redis section to tableview.yml and restart 'tableview serve'"},
		)
	}

	client, err := events.NewClient(cfg.Redis.Options(), cfg.Instance)
	if err != nil {
		return fmt.Errorf("failed to create event client: %w", err)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := client.Ping(ctx); err != nil {
		return printer.ErrorWithContext(
			"redis is not reachable",
			err.Error(),
			map[string]string{"Address": cfg.Redis.Addr},
			nil,
		)
	}

	if outputFormat == watch.FormatDefault {
		printer.Step("Watching instance '%s' (Ctrl+C to stop)\n", cfg.Instance)
	}

	return watch.Stream(ctx, client, watchSession, outputFormat, cmd.OutOrStdout())
}
