package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/slidesmith/internal/deck"
)

func newThemesCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List theme presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(*root, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer app.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "\tINDEX\tNAME\tACCENT\tBACKGROUND")
			for i, p := range deck.Presets {
				marker := ""
				if i == app.Config.Theme {
					marker = "*"
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", marker, i, p.Name, p.Accent, p.Background)
			}
			return tw.Flush()
		},
	}

	return cmd
}
