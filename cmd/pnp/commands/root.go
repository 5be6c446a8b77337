// Package commands implements the command line of the pnp resolver process.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pnp/internal/app"
	"go.trai.ch/pnp/internal/build"
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for pnp.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	opts    app.Options
}

// Application represents the application logic interface.
type Application interface {
	Open(ctx context.Context, opts app.Options) (*app.Session, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "pnp [request issuer]",
		Short: "Resolve package requests against a Plug'n'Play runtime state",
		Long: "With a request and an issuer, pnp prints one [error, resolution] line.\n" +
			"Without arguments it reads one [request, issuer] JSON array per line from stdin\n" +
			"and answers each on stdout, in order.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.run,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.Flags().StringVar(&c.opts.StatePath, "state", "",
		"Runtime state artifact (default: config stateFile, else "+domain.DefaultStateFile+" found upward)")
	rootCmd.Flags().StringVar(&c.opts.ConfigPath, "config", "", "Configuration file (default: discovered upward)")
	rootCmd.Flags().BoolVar(&c.opts.Trace, "trace", false, "Log a line for every resolution")

	c.rootCmd = rootCmd
	return c
}

func (c *CLI) run(cmd *cobra.Command, args []string) (err error) {
	if len(args) != 0 && len(args) != 2 {
		return domain.ErrUsage
	}

	ctx := cmd.Context()
	session, err := c.app.Open(ctx, c.opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := session.Close(ctx); closeErr != nil && err == nil {
			err = zerr.Wrap(closeErr, "failed to release resolver")
		}
	}()

	if len(args) == 0 {
		return session.Stream(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	if err := enc.Encode(session.ResolveOne(ctx, args[0], args[1])); err != nil {
		return zerr.Wrap(err, "failed to write reply")
	}
	return nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetInput sets the stream requests are read from in stream mode.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
