package resolver

import (
	"fmt"
	"strings"

	"go.trai.ch/pnp/internal/core/domain"
)

// failure carries the context shared by the dependency error builders.
type failure struct {
	request      string
	issuer       string
	name         string
	owner        domain.Locator
	ownerKnown   bool
	declaredDeps []string
}

func (f failure) requiredPackage() string {
	if f.name != f.request {
		return fmt.Sprintf("%s (via %q)", f.name, f.request)
	}
	return f.name
}

func (f failure) requiredBy() string {
	if !f.ownerKnown || f.owner.IsTopLevel() {
		return f.issuer
	}
	return fmt.Sprintf("%s (via %s)", f.owner, f.issuer)
}

func (f failure) data() map[string]any {
	data := map[string]any{
		"request":              f.request,
		"issuer":               f.issuer,
		"dependencyName":       f.name,
		"declaredDependencies": f.declaredDeps,
	}
	if f.ownerKnown {
		data["issuerLocator"] = f.owner
	} else {
		data["issuerLocator"] = nil
	}
	return data
}

func (f failure) fromApplication() bool {
	return !f.ownerKnown || f.owner.IsTopLevel()
}

func undeclaredDependency(f failure) *domain.ResolutionError {
	var head string
	if f.fromApplication() {
		head = fmt.Sprintf("Your application tried to access %s, but it isn't declared in your dependencies; "+
			"this makes the require call ambiguous and unsound.", f.name)
	} else {
		head = fmt.Sprintf("%s tried to access %s, but it isn't declared in its dependencies; "+
			"this makes the require call ambiguous and unsound.", f.owner.Name, f.name)
	}

	msg := fmt.Sprintf("%s\n\nRequired package: %s\nRequired by: %s", head, f.requiredPackage(), f.requiredBy())
	return domain.NewResolutionError(domain.CodeUndeclaredDependency, msg, f.data())
}

func missingPeerDependency(f failure) *domain.ResolutionError {
	var head string
	if f.fromApplication() {
		head = fmt.Sprintf("Your application tried to access %s (a peer dependency); this isn't allowed as there is "+
			"no ancestor to satisfy the requirement. Use a devDependency if needed.", f.name)
	} else {
		head = fmt.Sprintf("%s tried to access %s (a peer dependency) but it isn't provided by its ancestors; "+
			"this makes the require call ambiguous and unsound.", f.owner.Name, f.name)
	}

	msg := fmt.Sprintf("%s\n\nRequired package: %s\nRequired by: %s", head, f.requiredPackage(), f.requiredBy())
	return domain.NewResolutionError(domain.CodeMissingPeerDependency, msg, f.data())
}

func badSpecifier(request, issuer string) *domain.ResolutionError {
	return domain.NewResolutionError(domain.CodeBadSpecifier,
		fmt.Sprintf("The request %q isn't a valid package specifier", request),
		map[string]any{"request": request, "issuer": issuer})
}

func qualifiedPathResolutionFailed(unqualified string, candidates []string) *domain.ResolutionError {
	var b strings.Builder
	b.WriteString("Qualified path resolution failed: we looked for the following paths, but none could be accessed.\n\n")
	b.WriteString("Source path: ")
	b.WriteString(unqualified)
	for _, c := range candidates {
		b.WriteString("\nNot found: ")
		b.WriteString(c)
	}

	return domain.NewResolutionError(domain.CodeQualifiedPathResolutionFailed, b.String(), map[string]any{
		"unqualifiedPath": unqualified,
		"candidates":      candidates,
	})
}
