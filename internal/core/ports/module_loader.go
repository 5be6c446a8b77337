package ports

// ModuleRef is what the host loader needs to load a module.
type ModuleRef struct {
	// Path is the file to evaluate. For builtins it is the builtin name.
	Path string
	// Builtin marks modules provided by the host itself.
	Builtin bool
}

// ResolveFunc resolves request on behalf of the file issuer.
type ResolveFunc func(request, issuer string) (ModuleRef, error)

// LoaderPrimitives are the replaceable pieces of the host module loader.
// A set of primitives is never mutated once published; replacing behavior means swapping the pointer.
type LoaderPrimitives struct {
	Resolve ResolveFunc
	FS      FileSystem
	// Owner names who installed the primitives, "native" for the host defaults.
	Owner string
	// Original is the native set a wrapped set was built around. Nil for native primitives.
	Original *LoaderPrimitives
}

// ModuleLoader is the load hook exposed by the host runtime's module system.
type ModuleLoader interface {
	// Primitives returns the currently installed primitives.
	Primitives() *LoaderPrimitives
	// CompareAndSwap installs next if old is still current.
	CompareAndSwap(old, next *LoaderPrimitives) bool
}
