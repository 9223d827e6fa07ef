package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
	"github.com/alexisbeaulieu97/slidesmith/internal/editor"
)

type setOptions struct {
	DeckPath string
	Slide    int
	Field    string
	Value    string
	Root     rootFlags
}

var setCmdRunner = runSet

func newSetCmd(root *rootFlags) *cobra.Command {
	opts := setOptions{}

	cmd := &cobra.Command{
		Use:   "set <deck-file>",
		Short: "Edit one text field of a slide",
		Long: `Set writes one field through the same commit path as the interactive
editor. Fields are addressed as headline, subheadline, bullets[2],
bullets[2].label, metrics[0].value, items[1].phase, left_bullets[0] and so on.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DeckPath = args[0]
			opts.Root = *root

			if err := validateSetOptions(opts); err != nil {
				return err
			}

			return setCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Slide, "slide", 1, "Slide number (1-based)")
	cmd.Flags().StringVar(&opts.Field, "field", "", "Field to edit")
	cmd.Flags().StringVar(&opts.Value, "value", "", "New text")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func validateSetOptions(opts setOptions) error {
	if err := validateDeckPath(opts.DeckPath); err != nil {
		return err
	}
	if opts.Slide < 1 {
		return fmt.Errorf("--slide must be 1 or more")
	}
	if _, err := deck.ParseField(opts.Field); err != nil {
		return err
	}
	return nil
}

func runSet(cmd *cobra.Command, opts setOptions) error {
	app, err := newAppContext(opts.Root, cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer app.Close()

	d, err := deck.Load(opts.DeckPath)
	if err != nil {
		return err
	}
	ref, err := deck.ParseField(opts.Field)
	if err != nil {
		return err
	}

	session := editor.NewSession(d, app.Config.ThemeTemplates())
	if err := session.Set(opts.Slide-1, ref, opts.Value); err != nil {
		return fmt.Errorf("slide %d %s: %w", opts.Slide, ref, err)
	}
	if err := deck.Save(opts.DeckPath, session.Deck()); err != nil {
		return err
	}

	app.Log.WithFields(map[string]any{"slide": opts.Slide, "field": ref.String()}).Debug("field updated")
	fmt.Fprintf(cmd.OutOrStdout(), "Slide %d %s = %q\n", opts.Slide, ref, opts.Value)
	return nil
}
