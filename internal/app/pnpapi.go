package app

import (
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/engine/resolver"
)

// apiExports is what scripts get from require('pnpapi').
func apiExports(e *resolver.Engine) map[string]any {
	nullable := func(p string, ok bool, err error) (any, error) {
		if err != nil || !ok {
			return nil, err
		}
		return p, nil
	}

	return map[string]any{
		"VERSIONS": map[string]any{"std": 3},
		"topLevel": map[string]any{"name": nil, "reference": nil},
		"resolveRequest": func(request, issuer string) (any, error) {
			return nullable(e.ResolveRequest(request, issuer, resolver.DefaultResolveOptions()))
		},
		"resolveToUnqualified": func(request, issuer string) (any, error) {
			return nullable(e.ResolveToUnqualified(request, issuer, resolver.DefaultResolveOptions()))
		},
		"resolveUnqualified": func(path string) (string, error) {
			return e.ResolveUnqualified(path, resolver.ResolveOptions{})
		},
		"getLocator": func(name, reference string) map[string]any {
			return DescribeLocator(e.GetLocator(name, reference))
		},
		"getDependencyTreeRoots": func() []map[string]any {
			roots := e.GetDependencyTreeRoots()
			out := make([]map[string]any, 0, len(roots))
			for _, l := range roots {
				out = append(out, DescribeLocator(l))
			}
			return out
		},
		"findPackageLocator": func(path string) any {
			l, ok := e.FindPackageLocator(path)
			if !ok {
				return nil
			}
			return DescribeLocator(l)
		},
		"getPackageInformation": func(locator map[string]any) any {
			name, _ := locator["name"].(string)
			reference, _ := locator["reference"].(string)
			info, ok := e.GetPackageInformation(domain.NewLocator(name, reference))
			if !ok {
				return nil
			}
			return DescribePackage(info)
		},
	}
}

// DescribeLocator renders l the way the runtime API exposes locators. The top-level locator has null fields.
func DescribeLocator(l domain.Locator) map[string]any {
	if l.IsTopLevel() {
		return map[string]any{"name": nil, "reference": nil}
	}
	return map[string]any{"name": l.Name.String(), "reference": l.Reference.String()}
}

// DescribePackage renders a registry entry the way the runtime API exposes it.
func DescribePackage(info *domain.PackageInformation) map[string]any {
	deps := make(map[string]any, len(info.Dependencies))
	for _, name := range info.DependencyNames() {
		d := info.Dependencies[name]
		if d.Missing {
			deps[name] = nil
			continue
		}
		deps[name] = DescribeLocator(d.Locator)
	}
	return map[string]any{
		"packageLocation":     info.PackageLocation,
		"packageDependencies": deps,
		"packagePeers":        info.PeerNames,
		"linkType":            string(info.LinkType),
	}
}
