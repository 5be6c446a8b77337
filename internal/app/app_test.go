package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pnp/internal/adapters/jsruntime"
	"go.trai.ch/pnp/internal/adapters/telemetry"
	"go.trai.ch/pnp/internal/app"
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/core/ports"
	"go.trai.ch/pnp/internal/core/ports/mocks"
	"go.trai.ch/pnp/internal/engine/manager"
	"go.uber.org/mock/gomock"
)

const statePath = "/project/.pnp.data.json"

var (
	appLocator     = domain.NewLocator("app", "workspace:.")
	leftPadLocator = domain.NewLocator("left-pad", "npm:1.0.0")
)

func projectFiles() map[string]string {
	return map[string]string{
		statePath:                                     "{}",
		"/project/package.json":                       `{"name":"app"}`,
		"/project/index.js":                           "",
		"/project/.store/left-pad-1.0.0/package.json": `{"name":"left-pad"}`,
		"/project/.store/left-pad-1.0.0/index.js":     "",
	}
}

func projectState(t *testing.T, root, path string) *domain.RuntimeState {
	t.Helper()

	registry := domain.PackageRegistry{}
	registry.Put(appLocator, &domain.PackageInformation{
		PackageLocation: root + "/",
		LinkType:        domain.LinkSoft,
		Dependencies:    map[string]domain.Dependency{"left-pad": {Locator: leftPadLocator}},
	})
	registry.Put(leftPadLocator, &domain.PackageInformation{
		PackageLocation: root + "/.store/left-pad-1.0.0/",
		LinkType:        domain.LinkHard,
	})

	state, err := domain.NewRuntimeState(domain.StateSpec{
		ID:                  "project",
		StatePath:           path,
		BasePath:            root,
		Registry:            registry,
		DependencyTreeRoots: []domain.Locator{appLocator},
		EnableFallback:      true,
	})
	require.NoError(t, err)
	return state
}

type harness struct {
	app          *app.App
	configLoader *mocks.MockConfigLoader
	stateLoader  *mocks.MockStateLoader
	logger       *mocks.MockLogger
}

func newHarness(t *testing.T, fsys ports.FileSystem) harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := harness{
		configLoader: mocks.NewMockConfigLoader(ctrl),
		stateLoader:  mocks.NewMockStateLoader(ctrl),
		logger:       mocks.NewMockLogger(ctrl),
	}
	h.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	h.app = app.New(
		h.configLoader,
		h.stateLoader,
		jsruntime.NewLoader(fsys),
		fsys,
		h.logger,
		telemetry.NewOTelTracer(telemetry.InstrumentationName),
		manager.New(h.logger),
	)
	return h
}

// openProject opens the in-memory /project fixture with the default configuration.
func openProject(t *testing.T) *app.Session {
	t.Helper()

	h := newHarness(t, newMemFS(projectFiles()))
	h.configLoader.EXPECT().Load("/project", "").Return(domain.DefaultConfig(), nil)
	h.stateLoader.EXPECT().Load(statePath).Return(projectState(t, "/project", statePath), nil)

	s, err := h.app.Open(context.Background(), app.Options{Cwd: "/project", StatePath: statePath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestApp_Open(t *testing.T) {
	t.Run("state from flag", func(t *testing.T) {
		s := openProject(t)

		assert.Equal(t, "/project", s.Engine.BasePath())
		assert.Equal(t, statePath, s.Engine.BackingPath())
		assert.Equal(t, domain.DefaultExtensions, s.Config.Extensions)
	})

	t.Run("relative state flag is joined to cwd", func(t *testing.T) {
		h := newHarness(t, newMemFS(projectFiles()))
		h.configLoader.EXPECT().Load("/project", "").Return(domain.DefaultConfig(), nil)
		h.stateLoader.EXPECT().Load(statePath).Return(projectState(t, "/project", statePath), nil)

		_, err := h.app.Open(context.Background(), app.Options{Cwd: "/project", StatePath: ".pnp.data.json"})
		require.NoError(t, err)
	})

	t.Run("state file from config", func(t *testing.T) {
		h := newHarness(t, newMemFS(projectFiles()))
		cfg := domain.DefaultConfig()
		cfg.Path = "/project/.pnprc.yml"
		cfg.StateFile = "build/state.json"
		h.configLoader.EXPECT().Load("/project/src", "").Return(cfg, nil)
		h.stateLoader.EXPECT().Load("/project/build/state.json").
			Return(projectState(t, "/project", "/project/build/state.json"), nil)

		s, err := h.app.Open(context.Background(), app.Options{Cwd: "/project/src"})
		require.NoError(t, err)
		assert.Equal(t, "/project/build/state.json", s.Engine.BackingPath())
	})

	t.Run("discovered state", func(t *testing.T) {
		h := newHarness(t, newMemFS(projectFiles()))
		h.configLoader.EXPECT().Load("/project/src", "").Return(domain.DefaultConfig(), nil)
		h.stateLoader.EXPECT().Discover("/project/src").Return(statePath, nil)
		h.stateLoader.EXPECT().Load(statePath).Return(projectState(t, "/project", statePath), nil)

		_, err := h.app.Open(context.Background(), app.Options{Cwd: "/project/src"})
		require.NoError(t, err)
	})

	t.Run("state not found", func(t *testing.T) {
		h := newHarness(t, newMemFS(projectFiles()))
		h.configLoader.EXPECT().Load("/elsewhere", "").Return(domain.DefaultConfig(), nil)
		h.stateLoader.EXPECT().Discover("/elsewhere").Return("", domain.ErrStateNotFound)

		_, err := h.app.Open(context.Background(), app.Options{Cwd: "/elsewhere"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrStateNotFound)
		assert.Contains(t, err.Error(), "failed to start resolver")
	})

	t.Run("config error", func(t *testing.T) {
		h := newHarness(t, newMemFS(projectFiles()))
		h.configLoader.EXPECT().Load("/project", "/project/broken.yml").Return(nil, errors.New("yaml: line 1"))

		_, err := h.app.Open(context.Background(), app.Options{Cwd: "/project", ConfigPath: "/project/broken.yml"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load configuration")
	})

	t.Run("config overrides apply to a copy", func(t *testing.T) {
		h := newHarness(t, newMemFS(projectFiles()))
		disabled := false
		cfg := domain.DefaultConfig()
		cfg.Fallback = &disabled
		cfg.ArchiveBackend = domain.ArchiveBackendStd
		state := projectState(t, "/project", statePath)
		h.configLoader.EXPECT().Load("/project", "").Return(cfg, nil)
		h.stateLoader.EXPECT().Load(statePath).Return(state, nil)

		s, err := h.app.Open(context.Background(), app.Options{Cwd: "/project", StatePath: statePath})
		require.NoError(t, err)

		assert.False(t, s.Engine.State().EnableFallback)
		assert.Equal(t, domain.ArchiveBackendStd, s.Engine.State().ArchiveBackend)
		assert.True(t, state.EnableFallback)
		assert.Equal(t, domain.ArchiveBackendCompress, state.ArchiveBackend)
	})
}

func TestApp_Instances(t *testing.T) {
	h := newHarness(t, newMemFS(projectFiles()))
	h.configLoader.EXPECT().Load("/project", "").Return(domain.DefaultConfig(), nil).Times(2)
	h.stateLoader.EXPECT().Load(statePath).Return(projectState(t, "/project", statePath), nil).Times(2)

	first, err := h.app.Open(context.Background(), app.Options{Cwd: "/project", StatePath: statePath})
	require.NoError(t, err)
	second, err := h.app.Open(context.Background(), app.Options{Cwd: "/project", StatePath: statePath})
	require.NoError(t, err)

	instances := h.app.Instances()
	require.Len(t, instances, 2)
	assert.Equal(t, first.Engine.ID(), instances[0].ID())
	assert.Equal(t, second.Engine.ID(), instances[1].ID())
}
