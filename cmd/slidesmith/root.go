package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
	logJSON    bool
	logFile    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "slidesmith",
		Short:         "slidesmith turns notes into slide decks and exports them as .pptx",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to slidesmith.yaml (default: ./slidesmith.yaml when present)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.logJSON, "log-json", false, "Write logs as JSON")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Append logs to this file instead of stderr")

	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newExportCmd(flags))
	cmd.AddCommand(newGenerateCmd(flags))
	cmd.AddCommand(newPlanCmd(flags))
	cmd.AddCommand(newSetCmd(flags))
	cmd.AddCommand(newThemesCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
