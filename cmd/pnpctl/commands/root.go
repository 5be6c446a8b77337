// Package commands implements the CLI commands for pnpctl.
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
	"go.trai.ch/pnp/internal/core/ports"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for pnpctl.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	opts    app.Options
}

// Application represents the application logic interface.
type Application interface {
	Open(ctx context.Context, opts app.Options) (*app.Session, error)
	Instances() []ports.EngineInstance
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pnpctl",
		Short:         "Inspect and exercise a Plug'n'Play runtime state",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
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

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.opts.StatePath, "state", "",
		"Runtime state artifact (default: config stateFile, else "+domain.DefaultStateFile+" found upward)")
	flags.StringVar(&c.opts.ConfigPath, "config", "", "Configuration file (default: discovered upward)")
	flags.BoolVar(&c.opts.Trace, "trace", false, "Log a line for every resolution")

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newInfoCmd())
	rootCmd.AddCommand(c.newRootsCmd())
	rootCmd.AddCommand(c.newInstancesCmd())
	rootCmd.AddCommand(c.newExecCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// withSession opens a session for the duration of fn.
func (c *CLI) withSession(cmd *cobra.Command, fn func(*app.Session) error) (err error) {
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
	return fn(session)
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return zerr.Wrap(err, "failed to write output")
	}
	return nil
}
