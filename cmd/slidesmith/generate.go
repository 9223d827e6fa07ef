package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/outline"
	"github.com/alexisbeaulieu97/slidesmith/internal/tui/components"
)

type generateOptions struct {
	Prompt      string
	ContentPath string
	Style       string
	URLs        []string
	Output      string
	Enrich      bool
	Root        rootFlags
}

var generateCmdRunner = runGenerate

func newGenerateCmd(root *rootFlags) *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a deck outline from a prompt or notes",
		Long: `Generate asks the configured generator for a deck outline and writes it
to a deck file. With --enrich the outline is sent back once more to be
expanded into detailed slide content.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Root = *root

			if err := validateGenerateOptions(opts); err != nil {
				return err
			}

			return generateCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Prompt, "prompt", "p", "", "Topic or instructions for the deck")
	cmd.Flags().StringVar(&opts.ContentPath, "content", "", "File with source notes, or - for stdin")
	cmd.Flags().StringVar(&opts.Style, "style", "", fmt.Sprintf("Presentation style (%s)", strings.Join(outline.StyleKeys(), ", ")))
	cmd.Flags().StringSliceVar(&opts.URLs, "url", nil, "Reference URL; repeatable")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "deck.json", "Deck file to write (.json or .yaml)")
	cmd.Flags().BoolVar(&opts.Enrich, "enrich", false, "Expand the outline into detailed content")

	return cmd
}

func validateGenerateOptions(opts generateOptions) error {
	if strings.TrimSpace(opts.Prompt) == "" && strings.TrimSpace(opts.ContentPath) == "" {
		return fmt.Errorf("either --prompt or --content is required")
	}
	if strings.TrimSpace(opts.Output) == "" {
		return fmt.Errorf("output file is required")
	}
	if opts.Style != "" {
		if _, ok := outline.StyleByKey(opts.Style); !ok {
			return fmt.Errorf("unknown style %q (want one of %s)", opts.Style, strings.Join(outline.StyleKeys(), ", "))
		}
	}
	return nil
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	app, err := newAppContext(opts.Root, cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer app.Close()

	content, err := readContent(cmd.InOrStdin(), opts.ContentPath)
	if err != nil {
		return err
	}

	req := outline.Request{
		Prompt:  opts.Prompt,
		Style:   opts.Style,
		Content: content,
		URLs:    opts.URLs,
	}
	if req.Style == "" {
		req.Style = app.Config.Generator.Style
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc, err := app.Service(ctx)
	if err != nil {
		return err
	}

	var stages []components.StageStatus
	report := func() {
		fmt.Fprintln(cmd.OutOrStdout(), components.NewSummary(components.SummaryData{Stages: stages, Cancelled: ctx.Err() != nil}).View())
	}

	res, err := svc.Outline(ctx, svc.Begin(), req)
	if err != nil {
		stages = append(stages, components.StageStatus{Name: "outline", Message: err.Error()})
		report()
		return err
	}
	if res.Thinking != "" {
		app.Log.Debug("outline analysis: " + res.Thinking)
	}
	d := res.Deck
	stages = append(stages, components.StageStatus{Name: "outline", Passed: true, Message: fmt.Sprintf("%d slides", d.Len())})

	enrich := components.StageStatus{Name: "enrich", Skipped: !opts.Enrich}
	if opts.Enrich {
		enriched, err := svc.Enrich(ctx, svc.Begin(), d, req.Style)
		if err != nil {
			app.Log.Error(err, "enrichment failed, writing the outline")
			enrich.Message = fmt.Sprintf("%v (keeping the outline)", err)
		}
		if enriched.Deck != nil {
			d = enriched.Deck
		}
		if err == nil {
			enrich.Passed = true
			enrich.Message = fmt.Sprintf("%d slides", d.Len())
		}
	}
	stages = append(stages, enrich)

	preset := components.StageStatus{Name: "theme", Skipped: app.Config.Theme == 0}
	if app.Config.Theme > 0 {
		if err := d.ApplyPreset(app.Config.Theme); err != nil {
			return err
		}
		preset.Passed = true
		preset.Message = deck.Presets[app.Config.Theme].Name
	}
	stages = append(stages, preset)

	if err := deck.Save(opts.Output, d); err != nil {
		stages = append(stages, components.StageStatus{Name: "save", Message: err.Error()})
		report()
		return err
	}
	stages = append(stages, components.StageStatus{Name: "save", Passed: true, Message: opts.Output})
	report()

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d slides to %s\n", d.Len(), opts.Output)
	return nil
}

func readContent(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	switch path {
	case "":
		return "", nil
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return string(data), nil
}
