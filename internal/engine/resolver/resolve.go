package resolver

import (
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"

	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/engine/virtual"
)

// SelfRequest is the request name scripts use to reach the engine API itself.
const SelfRequest = "pnpapi"

var (
	pathRequest   = regexp.MustCompile(`^(?:/|\.{1,2}(?:/|$))`)
	hostAbsolute  = regexp.MustCompile(`^(?:[a-zA-Z]:[\\/]|\\\\)`)
	bareSpecifier = regexp.MustCompile(`^((?:@[^/]+/)?[^/]+)/*(.*)$`)
)

// ResolveOptions tunes a single resolution.
type ResolveOptions struct {
	// ConsiderBuiltins makes builtin requests defer to the host.
	ConsiderBuiltins bool
	// Extensions are appended to candidate paths in order. Nil selects the engine defaults.
	Extensions []string
	// Devirtualize returns the physical location instead of the virtual one.
	Devirtualize bool
}

// DefaultResolveOptions returns the options used by the host loader.
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{ConsiderBuiltins: true}
}

// ResolveToUnqualified maps request to a path inside the owning package without probing extensions.
// The boolean is false when the host should resolve the request itself.
func (e *Engine) ResolveToUnqualified(request, issuer string, opts ResolveOptions) (string, bool, error) {
	if e.observer != nil {
		e.observer.OnResolve(e, issuer)
	}

	if request == SelfRequest {
		return e.state.StatePath, true, nil
	}

	if opts.ConsiderBuiltins && domain.IsBuiltin(request) {
		return "", false, nil
	}

	issuerDir := e.issuerDirectory(issuer)
	if issuer != "" && e.state.IsIgnored(e.absolute(issuer)) {
		return "", false, nil
	}

	var unqualified string
	if pathRequest.MatchString(request) {
		if filepath.IsAbs(request) {
			unqualified = filepath.Clean(request)
		} else {
			unqualified = filepath.Join(issuerDir, request)
		}
	} else {
		location, subpath, err := e.resolveBare(request, issuer, issuerDir)
		if err != nil {
			return "", false, err
		}
		unqualified = filepath.Join(location, subpath)
	}

	if opts.Devirtualize {
		unqualified = virtual.Resolve(unqualified)
	}
	return unqualified, true, nil
}

// resolveBare returns the location of the package named by request and the remaining subpath.
func (e *Engine) resolveBare(request, issuer, issuerDir string) (string, string, error) {
	if hostAbsolute.MatchString(request) {
		return "", "", badSpecifier(request, issuer)
	}
	m := bareSpecifier.FindStringSubmatch(request)
	if m == nil {
		return "", "", badSpecifier(request, issuer)
	}
	name, subpath := m[1], m[2]

	f := failure{request: request, issuer: issuer, name: name, declaredDeps: []string{}}

	owner, _, ok := e.state.FindLocator(issuerDir)
	if !ok {
		return "", "", undeclaredDependency(f)
	}
	f.owner, f.ownerKnown = owner, true

	info, ok := e.state.Registry.Get(owner)
	if !ok {
		return "", "", undeclaredDependency(f)
	}
	f.declaredDeps = info.DependencyNames()

	dep, declared := info.Dependencies[name]
	if declared && dep.Resolved() {
		return e.location(dep.Locator), subpath, nil
	}

	if l, ok := e.fallback(owner, name); ok {
		return e.location(l), subpath, nil
	}

	if declared && !dep.Optional {
		return "", "", missingPeerDependency(f)
	}
	return "", "", undeclaredDependency(f)
}

// fallback looks name up in the fallback pool on behalf of owner and reports the first hit per pair.
func (e *Engine) fallback(owner domain.Locator, name string) (domain.Locator, bool) {
	if !e.state.EnableFallback || owner.IsTopLevel() || e.state.IsFallbackExcluded(owner) {
		return domain.Locator{}, false
	}

	l, ok := e.state.FindFallback(name)
	if !ok {
		return domain.Locator{}, false
	}

	key := owner.String() + "\x00" + name
	if _, warned := e.fallbackWarned.LoadOrStore(key, struct{}{}); !warned && e.logger != nil {
		e.logger.Warn(owner.String() + " used " + name + " through the fallback pool")
	}
	return l, true
}

func (e *Engine) location(l domain.Locator) string {
	info, _ := e.state.Registry.Get(l)
	return info.PackageLocation
}

func (e *Engine) issuerDirectory(issuer string) string {
	switch {
	case issuer == "":
		return e.state.BasePath
	case strings.HasSuffix(issuer, "/"):
		return e.absolute(issuer)
	default:
		return filepath.Dir(e.absolute(issuer))
	}
}

// ResolveUnqualified turns an unqualified path into a file by probing entry points, extensions and index files.
func (e *Engine) ResolveUnqualified(path string, opts ResolveOptions) (string, error) {
	extensions := opts.Extensions
	if extensions == nil {
		extensions = e.extensions
	}

	var candidates []string
	qualified, ok, err := e.probe(path, extensions, &candidates)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", qualifiedPathResolutionFailed(path, candidates)
	}
	return qualified, nil
}

func (e *Engine) probe(path string, extensions []string, candidates *[]string) (string, bool, error) {
	*candidates = append(*candidates, path)

	stat, err := e.stat(path)
	if err != nil {
		return "", false, err
	}
	if stat != nil && !stat.IsDir() {
		return path, true, nil
	}

	if stat != nil {
		if main := e.entryPoint(path); main != "" {
			next := filepath.Join(path, main)
			if next != path {
				qualified, ok, err := e.probe(next, extensions, candidates)
				if err != nil || ok {
					return qualified, ok, err
				}
			}
		}
	}

	for _, ext := range extensions {
		candidate := path + ext
		*candidates = append(*candidates, candidate)
		if ok, err := e.isFile(candidate); err != nil || ok {
			return candidate, ok, err
		}
	}

	if stat != nil {
		for _, ext := range extensions {
			candidate := filepath.Join(path, "index"+ext)
			*candidates = append(*candidates, candidate)
			if ok, err := e.isFile(candidate); err != nil || ok {
				return candidate, ok, err
			}
		}
	}

	return "", false, nil
}

// stat returns nil info for paths that do not exist. Other filesystem errors pass through.
func (e *Engine) stat(path string) (fs.FileInfo, error) {
	info, err := e.fs.Stat(path)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return info, nil
}

func (e *Engine) isFile(path string) (bool, error) {
	info, err := e.stat(path)
	if err != nil || info == nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// entryPoint returns the main file of the package directory, relative to it.
// The registry entry captured at build time wins over package.json.
func (e *Engine) entryPoint(dir string) string {
	if l, location, ok := e.state.FindLocator(dir); ok && location == domain.WithTrailingSlash(dir) {
		if info, ok := e.state.Registry.Get(l); ok && info.Main != "" {
			return info.Main
		}
	}

	data, err := e.fs.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return ""
	}
	var manifest struct {
		Main string `json:"main"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Main
}

// ResolveRequest resolves request to a qualified, canonical path. The boolean is false when the host
// should resolve the request itself.
func (e *Engine) ResolveRequest(request, issuer string, opts ResolveOptions) (string, bool, error) {
	unqualified, ok, err := e.ResolveToUnqualified(request, issuer, opts)
	if err != nil || !ok {
		return "", ok, err
	}
	if request == SelfRequest {
		return unqualified, true, nil
	}

	qualified, err := e.ResolveUnqualified(unqualified, opts)
	if err != nil {
		var re *domain.ResolutionError
		if errors.As(err, &re) && re.Code == domain.CodeQualifiedPathResolutionFailed {
			re.Data["request"] = request
			re.Data["issuer"] = issuer
		}
		return "", false, err
	}

	resolved, err := e.fs.Realpath(qualified)
	if err != nil {
		return "", false, err
	}
	if opts.Devirtualize {
		resolved = virtual.Resolve(resolved)
	}
	return resolved, true, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
