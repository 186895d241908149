package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SEA6153/tableview/internal/scaffold"
)

var (
	forceInit bool
	initDir   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter tableview.yml",
	Long: `Create a starter tableview.yml with the built-in seed tables.

The generated file is loaded back and validated before the command succeeds.

Use --force to overwrite an existing configuration.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing tableview.yml")
	initCmd.Flags().StringVar(&initDir, "dir", ".", "Directory to write tableview.yml into")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := scaffold.Initialize(initDir, forceInit); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	scaffold.PrintSuccess()
	return nil
}
