package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pnp/internal/app"
)

func (c *CLI) newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <entry.js> [args...]",
		Short: "Install the resolver into the module loader and run a script",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *app.Session) error {
				_, err := s.Exec(cmd.Context(), args[0], args[1:], cmd.OutOrStdout())
				return err
			})
		},
	}
	cmd.Flags().SetInterspersed(false)

	return cmd
}
