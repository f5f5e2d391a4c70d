// Package cmd provides the Cobra CLI commands for substyle.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/substyle/substyle/internal/cli"
)

var (
	app     *cli.App
	rootCmd = &cobra.Command{
		Use:   "substyle",
		Short: "Subtitle style engine: font catalog, web font loader, and style profiles",
		Long: `Substyle is the style-configuration engine of the subtitle editor:
the font catalog and web font loader, the saved style profiles, and the
bridge to the analysis service.

Explore the subcommands to resolve fonts, preload web font faces, and
manage style profiles from the command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}
			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
