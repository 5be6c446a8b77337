package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pnp/internal/adapters/config"
	pnpfs "go.trai.ch/pnp/internal/adapters/fs"
	"go.trai.ch/pnp/internal/adapters/jsruntime"
	"go.trai.ch/pnp/internal/adapters/state"
	"go.trai.ch/pnp/internal/adapters/telemetry"
	"go.trai.ch/pnp/internal/app"
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/core/ports/mocks"
	"go.trai.ch/pnp/internal/engine/manager"
	"go.trai.ch/pnp/internal/engine/patch"
	"go.uber.org/mock/gomock"
)

const stateArtifact = `{
  "basePath": ".",
  "enableFallback": false,
  "dependencyTreeRoots": [{"name": "app", "reference": "workspace:."}],
  "packageRegistry": [
    {
      "name": "app", "reference": "workspace:.", "packageLocation": "./", "linkType": "SOFT",
      "dependencies": [{"name": "left-pad", "reference": "npm:1.0.0"}]
    },
    {
      "name": "left-pad", "reference": "npm:1.0.0", "packageLocation": "./.store/left-pad/", "linkType": "HARD",
      "dependencies": []
    }
  ]
}`

func writeProject(t *testing.T) string {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	files := map[string]string{
		".pnp.data.json":           stateArtifact,
		"index.js":                 "console.log(require('left-pad')('x'));",
		".store/left-pad/index.js": "module.exports = function (s) { return '  ' + s; };",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	t.Chdir(root)
	return root
}

func newProvider(t *testing.T) (ComponentProvider, *mocks.MockLogger) {
	t.Helper()

	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	fsys := pnpfs.NewNativeFS()
	application := app.New(
		config.NewLoader(logger),
		state.NewLoader(fsys),
		jsruntime.NewLoader(fsys),
		fsys,
		logger,
		telemetry.NewNoOpTracer(),
		manager.New(logger),
	)

	return func(_ context.Context) (*app.Components, func(), error) {
		return app.NewComponents(application, logger), func() {}, nil
	}, logger
}

func TestRun_Roots(t *testing.T) {
	writeProject(t)
	provider, _ := newProvider(t)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"roots"}, stdout, stderr, provider)

	assert.Equal(t, 0, exitCode, stderr.String())
	assert.Equal(t, "app@workspace:.\n", stdout.String())
}

func TestRun_Exec(t *testing.T) {
	t.Cleanup(patch.Reset)
	root := writeProject(t)
	provider, _ := newProvider(t)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"exec", filepath.Join(root, "index.js")}, stdout, stderr, provider)

	assert.Equal(t, 0, exitCode, stderr.String())
	assert.Equal(t, "  x\n", stdout.String())
}

func TestRun_UnknownPackage(t *testing.T) {
	writeProject(t)
	provider, logger := newProvider(t)

	var logged error
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) { logged = err })

	exitCode := run(context.Background(), []string{"info", "left-pad", "npm:9.9.9"}, new(bytes.Buffer),
		new(bytes.Buffer), provider)

	assert.Equal(t, 1, exitCode)
	require.ErrorIs(t, logged, domain.ErrUnknownLocator)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}
