package state

// Artifact is the serialized runtime state.
type Artifact struct {
	BasePath              string           `json:"basePath"`
	EnableFallback        bool             `json:"enableFallback"`
	ArchiveBackend        string           `json:"archiveBackend,omitempty"`
	IgnorePattern         *string          `json:"ignorePattern,omitempty"`
	DependencyTreeRoots   []LocatorEntry   `json:"dependencyTreeRoots"`
	FallbackPool          []LocatorEntry   `json:"fallbackPool"`
	FallbackExclusionList []ExclusionEntry `json:"fallbackExclusionList"`
	PackageRegistry       []PackageEntry   `json:"packageRegistry"`
}

// LocatorEntry is a serialized locator. A null name and reference denote the top-level package.
type LocatorEntry struct {
	Name      *string `json:"name"`
	Reference *string `json:"reference"`
}

// ExclusionEntry lists the references of one package that may not use the fallback pool.
type ExclusionEntry struct {
	Name       string   `json:"name"`
	References []string `json:"references"`
}

// PackageEntry is one package instance of the registry.
type PackageEntry struct {
	Name              *string           `json:"name"`
	Reference         *string           `json:"reference"`
	PackageLocation   string            `json:"packageLocation"`
	LinkType          string            `json:"linkType"`
	Dependencies      []DependencyEntry `json:"dependencies"`
	Peers             []string          `json:"peers,omitempty"`
	Main              string            `json:"main,omitempty"`
	DiscardFromLookup bool              `json:"discardFromLookup,omitempty"`
}

// DependencyEntry binds a specifier name to a package.
// Package defaults to Name; a null Reference marks an unsatisfied peer dependency.
type DependencyEntry struct {
	Name      string  `json:"name"`
	Package   string  `json:"package,omitempty"`
	Reference *string `json:"reference"`
	Optional  bool    `json:"optional,omitempty"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
