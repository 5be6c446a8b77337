package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/pnp/internal/app"
)

func (c *CLI) newRootsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roots",
		Short: "List the dependency tree roots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withSession(cmd, func(s *app.Session) error {
				for _, l := range s.Engine.GetDependencyTreeRoots() {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), l.String()); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
