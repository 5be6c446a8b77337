package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pnp/internal/app"
	"go.trai.ch/pnp/internal/engine/resolver"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	var physical, noBuiltins bool

	cmd := &cobra.Command{
		Use:   "resolve <request> <issuer>",
		Short: "Resolve one request and print the [error, resolution] reply",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := resolver.DefaultResolveOptions()
			opts.ConsiderBuiltins = !noBuiltins
			opts.Devirtualize = physical

			return c.withSession(cmd, func(s *app.Session) error {
				resolved, ok, err := s.Resolve(cmd.Context(), args[0], args[1], opts)
				return writeJSON(cmd.OutOrStdout(), app.NewReply(resolved, ok, err), false)
			})
		},
	}

	cmd.Flags().BoolVar(&physical, "physical", false, "Map virtual paths back to their physical location")
	cmd.Flags().BoolVar(&noBuiltins, "no-builtins", false, "Resolve builtin names like any other package")

	return cmd
}
