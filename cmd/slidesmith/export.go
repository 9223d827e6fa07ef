package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
)

type exportOptions struct {
	DeckPath  string
	OutputDir string
	Root      rootFlags
}

var exportCmdRunner = runExport

func newExportCmd(root *rootFlags) *cobra.Command {
	opts := exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <deck-file>",
		Short: "Export a deck as a .pptx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DeckPath = args[0]
			opts.Root = *root

			if err := validateDeckPath(opts.DeckPath); err != nil {
				return err
			}

			return exportCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "Output directory (default: export.output_dir)")

	return cmd
}

func runExport(cmd *cobra.Command, opts exportOptions) error {
	app, err := newAppContext(opts.Root, cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer app.Close()

	d, err := deck.Load(opts.DeckPath)
	if err != nil {
		return err
	}
	templates, err := app.Templates()
	if err != nil {
		return err
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = app.Config.Export.OutputDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path, err := app.Writer(opts.DeckPath).ExportFile(ctx, dir, d, app.ExportOptions(templates))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d slides to %s\n", d.Len(), path)
	return nil
}
