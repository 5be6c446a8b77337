package resolver_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	pnpfs "go.trai.ch/pnp/internal/adapters/fs"
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/core/ports"
	"go.trai.ch/pnp/internal/core/ports/mocks"
	"go.trai.ch/pnp/internal/engine/resolver"
	"go.trai.ch/pnp/internal/engine/virtual"
	"go.uber.org/mock/gomock"
)

const virtualFolder = "/project/.yarn/__virtual__"

var (
	appLocator       = domain.NewLocator("app", "workspace:.")
	leftPadLocator   = domain.NewLocator("left-pad", "npm:1.0.0")
	otherLocator     = domain.NewLocator("other", "npm:1.0.0")
	react16Locator   = domain.NewLocator("react", "npm:16.0.0")
	react17Locator   = domain.NewLocator("react", "npm:17.0.0")
	sharedLocator    = domain.NewLocator("shared", "npm:1.0.0")
	entryLocator     = domain.NewLocator("entry", "npm:1.0.0")
	legacyLocator    = domain.NewLocator("legacy", "npm:1.0.0")
	looseLocator     = domain.NewLocator("loose", "npm:1.0.0")
	strictLocator    = domain.NewLocator("strict", "npm:1.0.0")
	sharedForApp     = virtualLocator(sharedLocator, react16Locator)
	sharedForOther   = virtualLocator(sharedLocator, react17Locator)
	sharedPhysical   = "/project/.store/shared-1.0.0"
	sharedAppPath    = virtual.MakePath(virtualFolder, virtualHash(sharedLocator, react16Locator), sharedPhysical)
	sharedOtherPath  = virtual.MakePath(virtualFolder, virtualHash(sharedLocator, react17Locator), sharedPhysical)
	fixtureStatePath = "/project/.pnp.data.json"
)

func virtualHash(l, react domain.Locator) string {
	return virtual.Hash(l, map[string]domain.Locator{"react": react})
}

func virtualLocator(l, react domain.Locator) domain.Locator {
	return domain.NewLocator(l.Name.String(), "virtual:"+virtualHash(l, react)+"#"+l.Reference.String())
}

func dep(l domain.Locator) domain.Dependency {
	return domain.Dependency{Locator: l}
}

func fixtureFiles() map[string]string {
	return map[string]string{
		"/project/.pnp.data.json":                     "{}",
		"/project/package.json":                       `{"name":"app"}`,
		"/project/src/index.js":                       "module.exports = 'app';",
		"/project/src/util.js":                        "module.exports = 'util';",
		"/project/src/data.json":                      `{"ok":true}`,
		"/project/src/dir/index.js":                   "module.exports = 'dir';",
		"/project/.cache/tool.js":                     "",
		"/project/.store/left-pad-1.0.0/package.json": `{"name":"left-pad"}`,
		"/project/.store/left-pad-1.0.0/index.js":     "module.exports = 'left-pad';",
		"/project/.store/left-pad-1.0.0/lib/util.js":  "module.exports = 'left-pad/util';",
		"/project/.store/shared-1.0.0/package.json":   `{"name":"shared"}`,
		"/project/.store/shared-1.0.0/index.js":       "module.exports = require('react');",
		"/project/.store/react-16.0.0/index.js":       "module.exports = 16;",
		"/project/.store/react-17.0.0/index.js":       "module.exports = 17;",
		"/project/.store/other-1.0.0/index.js":        "module.exports = require('shared');",
		"/project/.store/entry-1.0.0/package.json":    `{"main":"wrong.js"}`,
		"/project/.store/entry-1.0.0/dist/main.js":    "",
		"/project/.store/legacy-1.0.0/package.json":   `{"main":"lib/start"}`,
		"/project/.store/legacy-1.0.0/lib/start.js":   "",
		"/project/.store/loose-1.0.0/index.js":        "",
		"/project/.store/strict-1.0.0/index.js":       "",
	}
}

func fixtureState(t *testing.T) *domain.RuntimeState {
	t.Helper()

	registry := domain.PackageRegistry{}
	registry.Put(appLocator, &domain.PackageInformation{
		PackageLocation: "/project/",
		LinkType:        domain.LinkSoft,
		Dependencies: map[string]domain.Dependency{
			"left-pad": dep(leftPadLocator),
			"pad":      dep(leftPadLocator),
			"shared":   dep(sharedForApp),
			"other":    dep(otherLocator),
			"react":    dep(react16Locator),
			"entry":    dep(entryLocator),
			"legacy":   dep(legacyLocator),
			"loose":    dep(looseLocator),
			"strict":   dep(strictLocator),
		},
	})
	registry.Put(leftPadLocator, &domain.PackageInformation{
		PackageLocation: "/project/.store/left-pad-1.0.0/",
		LinkType:        domain.LinkHard,
		Dependencies:    map[string]domain.Dependency{},
	})
	registry.Put(react16Locator, &domain.PackageInformation{
		PackageLocation: "/project/.store/react-16.0.0/",
		LinkType:        domain.LinkHard,
	})
	registry.Put(react17Locator, &domain.PackageInformation{
		PackageLocation: "/project/.store/react-17.0.0/",
		LinkType:        domain.LinkHard,
	})
	registry.Put(otherLocator, &domain.PackageInformation{
		PackageLocation: "/project/.store/other-1.0.0/",
		LinkType:        domain.LinkHard,
		Dependencies: map[string]domain.Dependency{
			"shared": dep(sharedForOther),
			"react":  dep(react17Locator),
		},
	})
	registry.Put(sharedLocator, &domain.PackageInformation{
		PackageLocation: sharedPhysical + "/",
		LinkType:        domain.LinkHard,
		PeerNames:       []string{"react"},
		Dependencies: map[string]domain.Dependency{
			"react": {Missing: true},
		},
	})
	registry.Put(sharedForApp, &domain.PackageInformation{
		PackageLocation: sharedAppPath + "/",
		LinkType:        domain.LinkHard,
		PeerNames:       []string{"react"},
		Dependencies:    map[string]domain.Dependency{"react": dep(react16Locator)},
	})
	registry.Put(sharedForOther, &domain.PackageInformation{
		PackageLocation: sharedOtherPath + "/",
		LinkType:        domain.LinkHard,
		PeerNames:       []string{"react"},
		Dependencies:    map[string]domain.Dependency{"react": dep(react17Locator)},
	})
	registry.Put(entryLocator, &domain.PackageInformation{
		PackageLocation: "/project/.store/entry-1.0.0/",
		LinkType:        domain.LinkHard,
		Main:            "dist/main",
	})
	registry.Put(legacyLocator, &domain.PackageInformation{
		PackageLocation: "/project/.store/legacy-1.0.0/",
		LinkType:        domain.LinkHard,
	})
	registry.Put(looseLocator, &domain.PackageInformation{
		PackageLocation: "/project/.store/loose-1.0.0/",
		LinkType:        domain.LinkHard,
		PeerNames:       []string{"left-pad", "opt"},
		Dependencies: map[string]domain.Dependency{
			"left-pad": {Missing: true},
			"opt":      {Missing: true, Optional: true},
		},
	})
	registry.Put(strictLocator, &domain.PackageInformation{
		PackageLocation: "/project/.store/strict-1.0.0/",
		LinkType:        domain.LinkHard,
	})

	state, err := domain.NewRuntimeState(domain.StateSpec{
		ID:                  "fixture",
		StatePath:           fixtureStatePath,
		BasePath:            "/project",
		Registry:            registry,
		DependencyTreeRoots: []domain.Locator{appLocator},
		FallbackPool:        []domain.Locator{leftPadLocator},
		FallbackExclusions:  []domain.Locator{strictLocator},
		EnableFallback:      true,
		IgnorePattern:       regexp.MustCompile(`^\.cache/`),
	})
	require.NoError(t, err)
	return state
}

// quietLogger accepts any number of warnings.
func quietLogger(t *testing.T) ports.Logger {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return logger
}

func newEngine(t *testing.T) *resolver.Engine {
	t.Helper()
	return resolver.New(resolver.Params{
		State:  fixtureState(t),
		FS:     pnpfs.NewVirtualFS(newMemFS(fixtureFiles())),
		Logger: quietLogger(t),
	})
}
