package manager_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pnp/internal/core/ports/mocks"
	"go.trai.ch/pnp/internal/engine/manager"
	"go.uber.org/mock/gomock"
)

// instance returns an engine owning every path below location.
func instance(ctrl *gomock.Controller, id, stateID, location string) *mocks.MockEngineInstance {
	e := mocks.NewMockEngineInstance(ctrl)
	e.EXPECT().ID().Return(id).AnyTimes()
	e.EXPECT().StateID().Return(stateID).AnyTimes()
	e.EXPECT().BasePath().Return(strings.TrimSuffix(location, "/")).AnyTimes()
	e.EXPECT().OwnerLocation(gomock.Any()).DoAndReturn(func(path string) (string, bool) {
		if strings.HasPrefix(path, location) {
			return location, true
		}
		return "", false
	}).AnyTimes()
	return e
}

func TestManager_RegisterAndUnregister(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	m := manager.New(mocks.NewMockLogger(ctrl))
	outer := instance(ctrl, "a", "state-a", "/project/")
	inner := instance(ctrl, "b", "state-b", "/project/nested/")

	m.OnEngineCreated(outer)
	m.OnEngineCreated(inner)
	m.Register(outer)

	instances := m.Instances()
	require.Len(t, instances, 2)
	assert.Equal(t, "a", instances[0].ID())
	assert.Equal(t, "b", instances[1].ID())

	m.Unregister(outer)
	instances = m.Instances()
	require.Len(t, instances, 1)
	assert.Equal(t, "b", instances[0].ID())
}

func TestManager_FindInstance(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	m := manager.New(mocks.NewMockLogger(ctrl))
	m.Register(instance(ctrl, "a", "state-a", "/project/"))
	m.Register(instance(ctrl, "b", "state-b", "/project/nested/"))

	got, ok := m.FindInstance("/project/nested/index.js")
	require.True(t, ok)
	assert.Equal(t, "b", got.ID())

	got, ok = m.FindInstance("/project/src/index.js")
	require.True(t, ok)
	assert.Equal(t, "a", got.ID())

	_, ok = m.FindInstance("/elsewhere/index.js")
	assert.False(t, ok)
}

func TestManager_OnResolveReportsForeignIssuerOnce(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(
		"/project/nested/index.js is owned by the runtime state at /project/nested " +
			"but was resolved by the runtime state at /project",
	).Times(1)

	m := manager.New(logger)
	outer := instance(ctrl, "a", "state-a", "/project/")
	m.Register(outer)
	m.Register(instance(ctrl, "b", "state-b", "/project/nested/"))

	m.OnResolve(outer, "/project/nested/index.js")
	m.OnResolve(outer, "/project/nested/index.js")
	m.OnResolve(outer, "/project/nested/other.js")
}

func TestManager_OnResolveIgnoresMatchingState(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	// Any Warn call fails the test.
	m := manager.New(mocks.NewMockLogger(ctrl))
	outer := instance(ctrl, "a", "state-a", "/project/")
	alias := instance(ctrl, "c", "state-a", "/project/nested/")
	m.Register(outer)
	m.Register(alias)

	m.OnResolve(outer, "/project/src/index.js")
	m.OnResolve(outer, "/project/nested/index.js")
	m.OnResolve(outer, "/elsewhere/index.js")
	m.OnResolve(outer, "")
}

func TestManager_OnResolvePrefersResolvingEngineOnTie(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	// Any Warn call fails the test.
	m := manager.New(mocks.NewMockLogger(ctrl))
	first := instance(ctrl, "a", "state-a", "/project/")
	second := instance(ctrl, "b", "state-b", "/project/")
	m.Register(first)
	m.Register(second)

	m.OnResolve(second, "/project/index.js")

	got, ok := m.FindInstance("/project/index.js")
	require.True(t, ok)
	assert.Equal(t, "a", got.ID())
}
