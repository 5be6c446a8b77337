package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pnp/internal/core/domain"
)

func TestLocator_Comparable(t *testing.T) {
	seen := map[domain.Locator]int{}
	seen[domain.NewLocator("lodash", "npm:4.17.21")]++
	seen[domain.NewLocator("lodash", "npm:4.17.21")]++
	seen[domain.NewLocator("lodash", "npm:4.17.20")]++

	assert.Len(t, seen, 2)
	assert.Equal(t, 2, seen[domain.NewLocator("lodash", "npm:4.17.21")])
}

func TestLocator_TopLevel(t *testing.T) {
	assert.True(t, domain.NewLocator("", "").IsTopLevel())
	assert.True(t, domain.TopLevelLocator.IsTopLevel())
	assert.False(t, domain.NewLocator("app", "workspace:.").IsTopLevel())
	assert.Equal(t, "<top-level>", domain.TopLevelLocator.String())
	assert.Equal(t, "app@workspace:.", domain.NewLocator("app", "workspace:.").String())
}

func TestLocator_JSON(t *testing.T) {
	l := domain.NewLocator("@scope/pkg", "npm:1.0.0")

	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"@scope/pkg","reference":"npm:1.0.0"}`, string(data))

	var back domain.Locator
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, l, back)
}
