package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/editor"
	"github.com/alexisbeaulieu97/slidesmith/internal/export"
	"github.com/alexisbeaulieu97/slidesmith/internal/layout"
)

type planOptions struct {
	DeckPath string
	Slide    int
	JSON     bool
	Root     rootFlags
}

var planCmdRunner = runPlan

func newPlanCmd(root *rootFlags) *cobra.Command {
	opts := planOptions{}

	cmd := &cobra.Command{
		Use:   "plan <deck-file>",
		Short: "Print the resolved layout of each slide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DeckPath = args[0]
			opts.Root = *root

			if err := validateDeckPath(opts.DeckPath); err != nil {
				return err
			}
			if opts.Slide < 0 {
				return fmt.Errorf("--slide must be positive")
			}

			return planCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Slide, "slide", 0, "Only this slide (1-based)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output layout plans and export instructions as JSON")

	return cmd
}

type planSlide struct {
	Index      int                      `json:"index"`
	Kind       deck.Kind                `json:"kind"`
	Template   layout.Template          `json:"template"`
	Background string                   `json:"background"`
	IsLight    bool                     `json:"is_light"`
	Regions    []planRegion             `json:"regions"`
	Export     export.SlideInstructions `json:"export"`
}

type planRegion struct {
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	Field string  `json:"field,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Size  float64 `json:"size,omitempty"`
	Text  string  `json:"text,omitempty"`
}

func runPlan(cmd *cobra.Command, opts planOptions) error {
	app, err := newAppContext(opts.Root, cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer app.Close()

	d, err := deck.Load(opts.DeckPath)
	if err != nil {
		return err
	}
	if opts.Slide > d.Len() {
		return fmt.Errorf("slide %d does not exist (deck has %d)", opts.Slide, d.Len())
	}

	templates := app.Config.ThemeTemplates()
	session := editor.NewSession(d, templates)
	session.SetFontScale(app.Config.FontScaleFactor())
	instructions := export.Serialize(session.Deck(), app.ExportOptions(templates))

	var slides []planSlide
	for i := 0; i < session.Len(); i++ {
		if opts.Slide > 0 && i != opts.Slide-1 {
			continue
		}
		slides = append(slides, describeSlide(session, i, instructions[i]))
	}

	if opts.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(slides)
	}
	return renderPlanTable(cmd.OutOrStdout(), slides)
}

func describeSlide(s *editor.Session, i int, si export.SlideInstructions) planSlide {
	plan, res := s.Resolve(i)
	out := planSlide{
		Index:      i + 1,
		Kind:       s.Deck().Slides[i].Kind(),
		Template:   plan.Template,
		Background: res.Background.Kind.String(),
		IsLight:    res.IsLight,
		Export:     si,
	}
	for _, r := range plan.Regions {
		x, y, w, h := r.Box.Inches()
		pr := planRegion{Name: r.Name, Kind: r.Kind.String(), X: x, Y: y, W: w, H: h, Size: r.Style.Size, Text: r.Text()}
		if r.Editable() {
			pr.Field = r.Field.String()
		}
		out.Regions = append(out.Regions, pr)
	}
	return out
}

func renderPlanTable(w io.Writer, slides []planSlide) error {
	for _, s := range slides {
		fmt.Fprintf(w, "Slide %d · %s · %s · %s background", s.Index, s.Kind, s.Template, s.Background)
		if s.IsLight {
			fmt.Fprint(w, " (light)")
		}
		fmt.Fprintln(w)

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "REGION\tKIND\tFIELD\tX\tY\tW\tH\tPT\tTEXT")
		for _, r := range s.Regions {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%s\t%s\n",
				r.Name, r.Kind, valueOrDash(r.Field), r.X, r.Y, r.W, r.H, points(r.Size), clip(r.Text, 40))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func points(size float64) string {
	if size <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f", size)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
