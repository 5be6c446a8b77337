// Package app implements the application layer for pnp.
package app

import (
	"context"
	"path/filepath"

	pnpfs "go.trai.ch/pnp/internal/adapters/fs"
	"go.trai.ch/pnp/internal/adapters/telemetry"
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/core/ports"
	"go.trai.ch/pnp/internal/engine/manager"
	"go.trai.ch/pnp/internal/engine/patch"
	"go.trai.ch/pnp/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	stateLoader  ports.StateLoader
	moduleLoader ports.ModuleLoader
	fs           ports.FileSystem
	logger       ports.Logger
	tracer       ports.Tracer
	manager      *manager.Manager
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	stateLoader ports.StateLoader,
	moduleLoader ports.ModuleLoader,
	fsys ports.FileSystem,
	log ports.Logger,
	tracer ports.Tracer,
	mgr *manager.Manager,
) *App {
	return &App{
		configLoader: configLoader,
		stateLoader:  stateLoader,
		moduleLoader: moduleLoader,
		fs:           fsys,
		logger:       log,
		tracer:       tracer,
		manager:      mgr,
	}
}

// Options selects the project a session works on.
type Options struct {
	// Cwd is where the configuration and the runtime state are discovered from.
	Cwd string
	// StatePath overrides the runtime state artifact.
	StatePath string
	// ConfigPath overrides the configuration file.
	ConfigPath string
	// Trace logs a line for every resolution span.
	Trace bool
}

// formatSetter is implemented by loggers that can switch output format.
type formatSetter interface {
	SetFormat(domain.LogFormat)
}

// Open loads the configuration and the runtime state and builds an engine over the overlay stack.
//
//nolint:cyclop // orchestration function
func (a *App) Open(_ context.Context, opts Options) (*Session, error) {
	cwd := opts.Cwd
	if cwd == "" {
		cwd = "."
	}
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve working directory")
	}

	// 1. Configuration
	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if setter, ok := a.logger.(formatSetter); ok && cfg.LogFormat != "" {
		setter.SetFormat(cfg.LogFormat)
	}

	// 2. Runtime state
	statePath, err := a.statePath(cwd, opts, cfg)
	if err != nil {
		return nil, err
	}
	state, err := a.stateLoader.Load(statePath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to start resolver")
	}
	state = withConfig(state, cfg)

	// 3. Overlay
	stack, err := pnpfs.NewStack(pnpfs.StackOptions{
		Base:            a.fs,
		Backend:         state.ArchiveBackend,
		MaxOpenArchives: cfg.MaxOpenArchives,
	})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to start resolver")
	}
	dynamic := pnpfs.NewDynamicFS(stack)

	// 4. Engine
	engine := resolver.New(resolver.Params{
		State:      state,
		FS:         dynamic,
		Logger:     a.logger,
		Observer:   a.manager,
		Extensions: cfg.Extensions,
	})

	s := &Session{
		Engine: engine,
		Config: cfg,
		app:    a,
		binding: &patch.Binding{
			Engine:          engine,
			Manager:         a.manager,
			Loader:          a.moduleLoader,
			FS:              dynamic,
			MaxOpenArchives: cfg.MaxOpenArchives,
		},
	}
	if opts.Trace {
		s.shutdown = telemetry.Install(telemetry.NewBridge(a.logger))
	}
	return s, nil
}

func (a *App) statePath(cwd string, opts Options, cfg *domain.Config) (string, error) {
	switch {
	case opts.StatePath != "":
		return absolute(cwd, opts.StatePath), nil
	case cfg.Path != "" && cfg.StateFile != "":
		return absolute(filepath.Dir(cfg.Path), cfg.StateFile), nil
	default:
		path, err := a.stateLoader.Discover(cwd)
		if err != nil {
			return "", zerr.Wrap(err, "failed to start resolver")
		}
		return path, nil
	}
}

// Instances returns the engines constructed in this process.
func (a *App) Instances() []ports.EngineInstance {
	return a.manager.Instances()
}

// withConfig applies the configuration overrides to a copy of state.
func withConfig(state *domain.RuntimeState, cfg *domain.Config) *domain.RuntimeState {
	if cfg.Fallback == nil && cfg.ArchiveBackend == "" {
		return state
	}
	overridden := *state
	if cfg.Fallback != nil {
		overridden.EnableFallback = *cfg.Fallback
	}
	if cfg.ArchiveBackend != "" {
		overridden.ArchiveBackend = cfg.ArchiveBackend
	}
	return &overridden
}

func absolute(dir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}

func unknownLocator(l domain.Locator) error {
	return zerr.With(zerr.Wrap(domain.ErrUnknownLocator, "package not found"), "locator", l.String())
}
