package domain

import (
	"slices"
)

// LinkType distinguishes packages copied into the store from packages referenced in place.
type LinkType string

const (
	// LinkHard marks a package whose content is owned by the store (usually an archive).
	LinkHard LinkType = "HARD"
	// LinkSoft marks a package referenced in place, such as a workspace or a portal.
	LinkSoft LinkType = "SOFT"
)

// Valid reports whether t is a known link type.
func (t LinkType) Valid() bool {
	return t == LinkHard || t == LinkSoft
}

// Dependency is the target of one entry in a package's dependency map.
//
// A dependency either points at a Locator, or is Missing: a peer dependency that no ancestor provides.
// Missing entries marked Optional behave as if they were absent.
type Dependency struct {
	Locator  Locator
	Missing  bool
	Optional bool
}

// Resolved reports whether the dependency points at a concrete package.
func (d Dependency) Resolved() bool {
	return !d.Missing
}

// PackageInformation describes one package instance of the registry.
type PackageInformation struct {
	// PackageLocation is the absolute directory of the package, always ending with a slash.
	// It may contain a virtual segment.
	PackageLocation string

	// Dependencies maps the specifier name used by the package to its target.
	Dependencies map[string]Dependency

	// PeerNames lists the peer dependency names of the package.
	PeerNames []string

	// LinkType is HARD for store content and SOFT for in-place references.
	LinkType LinkType

	// Main is the entry point captured when the state was built, relative to PackageLocation.
	Main string

	// DiscardFromLookup excludes the location from the location-to-locator index.
	DiscardFromLookup bool
}

// DependencyNames returns the sorted specifier names declared by the package.
func (p *PackageInformation) DependencyNames() []string {
	names := make([]string, 0, len(p.Dependencies))
	for name := range p.Dependencies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// HasPeer reports whether name is one of the package's peer dependencies.
func (p *PackageInformation) HasPeer(name string) bool {
	return slices.Contains(p.PeerNames, name)
}

// PackageRegistry maps package names to references to package information.
type PackageRegistry map[string]map[string]*PackageInformation

// Get returns the package information of the given locator.
func (r PackageRegistry) Get(l Locator) (*PackageInformation, bool) {
	refs, ok := r[l.Name.String()]
	if !ok {
		return nil, false
	}
	info, ok := refs[l.Reference.String()]
	return info, ok
}

// Has reports whether the locator is a registry key.
func (r PackageRegistry) Has(l Locator) bool {
	_, ok := r.Get(l)
	return ok
}

// Put stores the package information under the given locator.
func (r PackageRegistry) Put(l Locator, info *PackageInformation) {
	refs, ok := r[l.Name.String()]
	if !ok {
		refs = make(map[string]*PackageInformation)
		r[l.Name.String()] = refs
	}
	refs[l.Reference.String()] = info
}

// Locators returns every locator of the registry in name then reference order.
func (r PackageRegistry) Locators() []Locator {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)

	var out []Locator
	for _, name := range names {
		refs := make([]string, 0, len(r[name]))
		for ref := range r[name] {
			refs = append(refs, ref)
		}
		slices.Sort(refs)
		for _, ref := range refs {
			out = append(out, NewLocator(name, ref))
		}
	}
	return out
}
