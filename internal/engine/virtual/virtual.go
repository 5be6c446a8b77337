// Package virtual maps virtual package paths to the physical paths they stand for.
//
// A package whose peer dependencies differ between consumers is exposed under one virtual path per
// consumer group, so the same files can be treated as distinct package instances:
//
//	<base>/__virtual__/<hash>/<depth>/<rest>  ->  <base>/(../ × depth)/<rest>
package virtual

import (
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pnp/internal/core/domain"
)

// Folder is the path segment that introduces a virtual path.
const Folder = "__virtual__"

var hashPattern = regexp.MustCompile(`^(?:[^/]+-)?[a-f0-9]+$`)

// IsVirtual reports whether p contains a virtual segment.
func IsVirtual(p string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
		if seg == Folder {
			return true
		}
	}
	return false
}

// Resolve returns the physical path p stands for. Concrete paths are returned unchanged.
// Nested virtual segments are resolved until none is left.
func Resolve(p string) string {
	for {
		next, changed := resolveOnce(filepath.ToSlash(p))
		if !changed {
			return p
		}
		p = filepath.FromSlash(next)
	}
}

func resolveOnce(p string) (string, bool) {
	segs := strings.Split(p, "/")
	idx := slices.Index(segs, Folder)
	if idx < 0 {
		return p, false
	}

	base := strings.Join(segs[:idx], "/")
	if base == "" {
		base = "/"
	}
	rest := segs[idx+1:]

	// A bare virtual folder collapses to its base. A missing or malformed hash leaves the path untouched.
	if len(rest) == 0 {
		return base, true
	}
	if rest[len(rest)-1] == "" {
		rest = rest[:len(rest)-1]
	}
	if len(rest) == 0 || !hashPattern.MatchString(rest[0]) {
		return p, false
	}
	if len(rest) == 1 {
		return base, true
	}

	depth, err := strconv.Atoi(rest[1])
	if err != nil || depth < 0 {
		return p, false
	}

	parts := []string{base}
	for range depth {
		parts = append(parts, "..")
	}
	parts = append(parts, rest[2:]...)
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(strings.Join(parts, "/")))), true
}

// Marker is the first virtual segment of a path.
type Marker struct {
	// Folder is the path up to and including the virtual folder.
	Folder string
	// Hash is the virtual component following Folder.
	Hash string
	// HasSubpath reports whether anything follows the hash.
	HasSubpath bool
}

// Parse returns the first well-formed virtual marker of p.
func Parse(p string) (Marker, bool) {
	segs := strings.Split(filepath.ToSlash(p), "/")
	idx := slices.Index(segs, Folder)
	if idx < 0 || idx+1 >= len(segs) || !hashPattern.MatchString(segs[idx+1]) {
		return Marker{}, false
	}

	rest := segs[idx+2:]
	if len(rest) > 0 && rest[len(rest)-1] == "" {
		rest = rest[:len(rest)-1]
	}
	return Marker{
		Folder:     filepath.FromSlash(strings.Join(segs[:idx+1], "/")),
		Hash:       segs[idx+1],
		HasSubpath: len(rest) > 0,
	}, true
}

// MakePath builds the virtual path under folder whose resolution is physical.
// folder is the directory named Folder; hash becomes the virtual component.
func MakePath(folder, hash, physical string) string {
	rel, err := filepath.Rel(filepath.Dir(folder), physical)
	if err != nil {
		return physical
	}

	segs := strings.Split(filepath.ToSlash(rel), "/")
	depth := 0
	for depth < len(segs) && segs[depth] == ".." {
		depth++
	}

	parts := []string{folder, hash, strconv.Itoa(depth)}
	for _, s := range segs[depth:] {
		if s != "." {
			parts = append(parts, s)
		}
	}
	return filepath.Join(parts...)
}

// Hash returns the virtual component identifying locator bound to peers.
// The result only depends on the locator and the set of peer bindings.
func Hash(locator domain.Locator, peers map[string]domain.Locator) string {
	names := make([]string, 0, len(peers))
	for name := range peers {
		names = append(names, name)
	}
	slices.Sort(names)

	d := xxhash.New()
	_, _ = d.WriteString(locator.String())
	for _, name := range names {
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(name)
		_, _ = d.WriteString("=")
		_, _ = d.WriteString(peers[name].String())
	}

	return slug(locator.Name.String()) + "-virtual-" + strconv.FormatUint(d.Sum64(), 16)
}

func slug(name string) string {
	name = strings.TrimPrefix(name, "@")
	return strings.ReplaceAll(name, "/", "-")
}
