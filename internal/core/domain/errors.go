package domain

import "go.trai.ch/zerr"

var (
	// ErrUndeclaredDependency is returned when a specifier is neither a declared dependency of the issuer
	// nor available through the fallback pool.
	ErrUndeclaredDependency = zerr.New("undeclared dependency")

	// ErrMissingPeerDependency is returned when a declared peer dependency is not provided by the ancestors.
	ErrMissingPeerDependency = zerr.New("missing peer dependency")

	// ErrQualifiedPathResolutionFailed is returned when no file, extension or index candidate exists.
	ErrQualifiedPathResolutionFailed = zerr.New("qualified path resolution failed")

	// ErrInvalidJSON is returned when a stream line cannot be decoded.
	ErrInvalidJSON = zerr.New("invalid json")

	// ErrBadSpecifier is returned when a bare request cannot be split into a package name.
	ErrBadSpecifier = zerr.New("bad specifier")

	// ErrStateNotFound is returned when no runtime state artifact can be located.
	ErrStateNotFound = zerr.New("could not find a runtime state file")

	// ErrStateReadFailed is returned when the runtime state artifact cannot be read.
	ErrStateReadFailed = zerr.New("failed to read runtime state")

	// ErrStateParseFailed is returned when the runtime state artifact cannot be decoded.
	ErrStateParseFailed = zerr.New("failed to parse runtime state")

	// ErrDanglingLocator is returned when a locator referenced by the state is not a registry key.
	ErrDanglingLocator = zerr.New("locator is not present in the package registry")

	// ErrDuplicateLocator is returned when the registry declares the same locator twice.
	ErrDuplicateLocator = zerr.New("duplicate locator in package registry")

	// ErrInvalidIgnorePattern is returned when the ignore pattern is not a valid regular expression.
	ErrInvalidIgnorePattern = zerr.New("invalid ignore pattern")

	// ErrUnknownArchiveBackend is returned when the archive backend selector is not recognized.
	ErrUnknownArchiveBackend = zerr.New("unknown archive backend, expected 'compress' or 'std'")

	// ErrInvalidLinkType is returned when a package declares a link type other than HARD or SOFT.
	ErrInvalidLinkType = zerr.New("invalid link type, expected 'HARD' or 'SOFT'")

	// ErrUnknownLocator is returned when a locator is not a key of the package registry.
	ErrUnknownLocator = zerr.New("unknown locator")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfigValue is returned when a config key holds an unsupported value.
	ErrInvalidConfigValue = zerr.New("invalid config value")

	// ErrArchiveOpenFailed is returned when a zip archive cannot be opened.
	ErrArchiveOpenFailed = zerr.New("failed to open archive")

	// ErrUsage is returned when the resolver entry point is called with the wrong number of arguments.
	ErrUsage = zerr.New("usage: pnp <request> <issuer>")

	// ErrModuleNotFound is returned when the native loader cannot find a module.
	ErrModuleNotFound = zerr.New("cannot find module")

	// ErrModuleLoadFailed is returned when the host runtime cannot evaluate a module.
	ErrModuleLoadFailed = zerr.New("failed to load module")
)
