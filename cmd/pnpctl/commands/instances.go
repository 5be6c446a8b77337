package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.trai.ch/pnp/internal/app"
	"go.trai.ch/pnp/internal/engine/resolver"
)

func (c *CLI) newInstancesCmd() *cobra.Command {
	var rebase []string

	cmd := &cobra.Command{
		Use:   "instances",
		Short: "List the resolution engines constructed in this process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withSession(cmd, func(s *app.Session) error {
				for _, basePath := range rebase {
					if _, err := s.Engine.Make(resolver.MakeOptions{BasePath: basePath}); err != nil {
						return err
					}
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintln(w, "ID\tSTATE\tBASE PATH")
				for _, inst := range c.app.Instances() {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", inst.ID(), inst.StateID(), inst.BasePath())
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringArrayVar(&rebase, "rebase", nil, "Also build an instance moved to this base path (repeatable)")

	return cmd
}
