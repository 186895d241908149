package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SEA6153/tableview/internal/filter"
	"github.com/SEA6153/tableview/internal/printer"
	"github.com/SEA6153/tableview/internal/render"
	"github.com/SEA6153/tableview/pkg/records"
)

var (
	showTable  string
	showOutput string
	showFilter filter.Criteria
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the seed tables a new session starts with",
	Long: `Print the seed tables a new session starts with.

Output Formats:
  table - Aligned columns (default)
  jsonl - One JSON record per line

Examples:
  # Every seed table
  tableview show

  # One table, matched case-insensitively
  tableview show --table istanbul

  # Records released since 2000 by artists starting with "Ed"
  tableview show --table İstanbul --since 2000 --artist 'ed*'
`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showTable, "table", "t", "", "Only show this table")
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "table", "Output format (table or jsonl)")
	showCmd.Flags().StringVar(&showFilter.ArtistGlob, "artist", "", "Filter by artist (glob, case-insensitive)")
	showCmd.Flags().StringVar(&showFilter.SongGlob, "song", "", "Filter by song title (glob, case-insensitive)")
	showCmd.Flags().IntVar(&showFilter.SinceYear, "since", 0, "Only records released in or after this year")
	showCmd.Flags().IntVar(&showFilter.UntilYear, "until", 0, "Only records released in or before this year")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if showOutput != "table" && showOutput != "jsonl" {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", showOutput),
			[]string{"Valid formats: table, jsonl"},
		)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store := records.NewStore(cfg.Dataset(), "")
	names := store.TableNames()
	if showTable != "" {
		if err := store.SelectTable(showTable); err != nil {
			for _, n := range store.DrainNotices() {
				printer.Notice(n)
			}
			return printer.Error(
				"table not found",
				fmt.Sprintf("No seed table matches '%s'.", showTable),
				[]string{fmt.Sprintf("Available tables: %v", names)},
			)
		}
		names = []string{showTable}
	}

	out := cmd.OutOrStdout()
	for i, name := range names {
		if err := store.SelectTable(name); err != nil {
			return err
		}
		list := showFilter.Apply(store.Records())
		if showOutput == "jsonl" {
			if err := render.FormatJSONL(out, list); err != nil {
				return err
			}
			continue
		}

		if i > 0 {
			fmt.Fprintln(out)
		}
		if render.FormatTable(out, list, name) == 0 && showFilter.HasFilters() {
			printer.Info("No records in '%s' match the filters\n", name)
		}
	}
	return nil
}
