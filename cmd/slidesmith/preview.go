package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/editor"
	"github.com/alexisbeaulieu97/slidesmith/internal/outline"
	"github.com/alexisbeaulieu97/slidesmith/internal/tui/preview"
)

type previewOptions struct {
	DeckPath       string
	OutputDir      string
	Width          int
	NonInteractive bool
	Root           rootFlags
}

var previewCmdRunner = runPreview

func newPreviewCmd(root *rootFlags) *cobra.Command {
	opts := previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview <deck-file>",
		Short: "Preview and edit a deck in the terminal",
		Long: `Preview opens the deck in an interactive terminal editor. When stdout is
not a terminal every slide is printed as plain text instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DeckPath = args[0]
			opts.Root = *root
			if !opts.NonInteractive {
				opts.NonInteractive = !term.IsTerminal(int(os.Stdout.Fd()))
			}

			if err := validateDeckPath(opts.DeckPath); err != nil {
				return err
			}

			return previewCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "Directory for .pptx exports (default: export.output_dir)")
	cmd.Flags().IntVar(&opts.Width, "width", 100, "Canvas width in columns when printing")
	cmd.Flags().BoolVar(&opts.NonInteractive, "print", false, "Print every slide instead of opening the editor")

	return cmd
}

func runPreview(cmd *cobra.Command, opts previewOptions) error {
	app, err := newAppContext(opts.Root, cmd.ErrOrStderr(), !opts.NonInteractive)
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

	session := editor.NewSession(d, templates)
	session.SetFontScale(app.Config.FontScaleFactor())

	if opts.NonInteractive {
		return printSlides(cmd.OutOrStdout(), session, opts.Width)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = app.Config.Export.OutputDir
	}

	modelOpts := preview.Options{
		Session:   session,
		Path:      opts.DeckPath,
		Style:     app.Config.Generator.Style,
		Exporter:  app.Writer(opts.DeckPath),
		ExportDir: outputDir,
		Export:    app.ExportOptions(templates),
		Log:       app.Log,
	}
	if svc, err := app.Service(context.Background()); err != nil {
		app.Log.Warn(fmt.Sprintf("generator unavailable: %v", err))
	} else {
		modelOpts.Generator = svc
		modelOpts.Request = outline.Request{Prompt: d.Title, Style: app.Config.Generator.Style}
	}

	program := tea.NewProgram(preview.NewModel(modelOpts), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run preview: %w", err)
	}
	if m, ok := final.(preview.Model); ok && m.Dirty() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Unsaved changes were discarded.")
	}

	return nil
}

// printSlides writes every slide as a framed plain-text canvas.
func printSlides(w io.Writer, s *editor.Session, width int) error {
	for i := 0; i < s.Len(); i++ {
		plan, res := s.Resolve(i)
		slide := s.Deck().Slides[i]
		if _, err := fmt.Fprintf(w, "Slide %d/%d · %s · %s\n%s\n\n", i+1, s.Len(), slide.Kind(), plan.Template, preview.RenderText(plan, res, width)); err != nil {
			return err
		}
	}
	return nil
}
