package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/SEA6153/tableview/internal/config"
	"github.com/SEA6153/tableview/internal/printer"
	"github.com/SEA6153/tableview/internal/scaffold"
)

var (
	version string
	commit  string
	date    string

	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tableview",
	Short: "tableview - session-scoped music record tables",
	Long: `tableview keeps named tables of music records for each client session.

Each session starts from the configured seed tables and can select, add,
edit, delete and rename tables and records through an HTTP JSON API.
Nothing is persisted: a session's data lives until the session ends.`,
	Version: version,
	// Prevent silent success when unknown flags are passed to root command
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", scaffold.ConfigFile, "Path to configuration file")
}

// loadConfig reads the --config file. A missing default file falls back to
// the built-in configuration; a missing explicit file is an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err == nil {
		return cfg, nil
	}

	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		return config.Default(), nil
	}

	cwd, _ := os.Getwd()
	return nil, printer.ErrorWithContext(
		"failed to load configuration",
		err.Error(),
		map[string]string{"Config": configPath, "Directory": cwd},
		[]string{"Run 'tableview init' to create a starter configuration"},
	)
}
