package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pnp/internal/app"
)

func (c *CLI) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <name> <reference>",
		Short: "Print the registry entry of a package",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *app.Session) error {
				info, err := s.Info(args[0], args[1])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), app.DescribePackage(info), true)
			})
		},
	}
}
