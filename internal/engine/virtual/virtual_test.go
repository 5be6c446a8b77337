package virtual_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/engine/virtual"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "concrete path is unchanged",
			in:   "/project/node_modules/left-pad/index.js",
			want: "/project/node_modules/left-pad/index.js",
		},
		{
			name: "depth zero",
			in:   "/project/.yarn/__virtual__/react-dom-virtual-abc123/0/cache/react-dom.zip/node_modules/react-dom/index.js",
			want: "/project/.yarn/cache/react-dom.zip/node_modules/react-dom/index.js",
		},
		{
			name: "depth two",
			in:   "/project/.yarn/__virtual__/abc123/2/packages/ui/src/button.js",
			want: "/packages/ui/src/button.js",
		},
		{
			name: "depth one climbs out of base",
			in:   "/project/.yarn/__virtual__/abc123/1/packages/ui",
			want: "/project/packages/ui",
		},
		{
			name: "nested virtual segments",
			in:   "/p/a/__virtual__/aa11/0/b/__virtual__/bb22/1/c/file.js",
			want: "/p/a/c/file.js",
		},
		{
			name: "missing depth collapses to base",
			in:   "/project/.yarn/__virtual__/abc123",
			want: "/project/.yarn",
		},
		{
			name: "bare folder collapses to base",
			in:   "/project/.yarn/__virtual__",
			want: "/project/.yarn",
		},
		{
			name: "folder with trailing slash and no hash is unchanged",
			in:   "/project/.yarn/__virtual__/",
			want: "/project/.yarn/__virtual__/",
		},
		{
			name: "hash with trailing slash collapses to base",
			in:   "/project/.yarn/__virtual__/abc123/",
			want: "/project/.yarn",
		},
		{
			name: "malformed hash is untouched",
			in:   "/project/.yarn/__virtual__/NOT_A_HASH/0/x.js",
			want: "/project/.yarn/__virtual__/NOT_A_HASH/0/x.js",
		},
		{
			name: "non numeric depth is untouched",
			in:   "/project/.yarn/__virtual__/abc123/x/y.js",
			want: "/project/.yarn/__virtual__/abc123/x/y.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := virtual.Resolve(filepath.FromSlash(tt.in))
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	in := filepath.FromSlash("/project/.yarn/__virtual__/abc123/0/cache/pkg.zip/node_modules/pkg/")
	once := virtual.Resolve(in)
	assert.Equal(t, once, virtual.Resolve(once))
	assert.False(t, virtual.IsVirtual(once))
	assert.True(t, virtual.IsVirtual(in))
}

func TestMakePath_RoundTrip(t *testing.T) {
	folder := filepath.FromSlash("/project/.yarn/__virtual__")
	hash := virtual.Hash(domain.NewLocator("react-dom", "npm:18.0.0"), nil)

	for _, physical := range []string{
		"/project/.yarn/cache/react-dom.zip/node_modules/react-dom",
		"/project/packages/ui",
		"/elsewhere/ui",
	} {
		physical = filepath.FromSlash(physical)
		p := virtual.MakePath(folder, hash, physical)
		assert.True(t, virtual.IsVirtual(p))
		assert.Equal(t, physical, virtual.Resolve(p))
	}
}

func TestHash(t *testing.T) {
	l := domain.NewLocator("@scope/ui", "workspace:packages/ui")
	react17 := map[string]domain.Locator{"react": domain.NewLocator("react", "npm:17.0.0")}
	react18 := map[string]domain.Locator{"react": domain.NewLocator("react", "npm:18.0.0")}

	h := virtual.Hash(l, react17)
	assert.Equal(t, h, virtual.Hash(l, map[string]domain.Locator{"react": domain.NewLocator("react", "npm:17.0.0")}))
	assert.NotEqual(t, h, virtual.Hash(l, react18))
	assert.Regexp(t, `^scope-ui-virtual-[a-f0-9]+$`, h)
}

func TestParse(t *testing.T) {
	m, ok := virtual.Parse(filepath.FromSlash("/p/.yarn/__virtual__/ui-virtual-abc123/0/cache/ui.zip"))
	assert.True(t, ok)
	assert.Equal(t, filepath.FromSlash("/p/.yarn/__virtual__"), m.Folder)
	assert.Equal(t, "ui-virtual-abc123", m.Hash)
	assert.True(t, m.HasSubpath)

	m, ok = virtual.Parse(filepath.FromSlash("/p/.yarn/__virtual__/abc123/"))
	assert.True(t, ok)
	assert.False(t, m.HasSubpath)

	_, ok = virtual.Parse(filepath.FromSlash("/p/.yarn/cache/ui.zip"))
	assert.False(t, ok)
}
