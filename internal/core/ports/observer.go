package ports

// EngineInstance is the view of a resolution engine that observers are given.
type EngineInstance interface {
	// ID is unique per constructed engine.
	ID() string
	// StateID identifies the runtime state snapshot the engine is bound to.
	StateID() string
	// BasePath is the base path of the bound state.
	BasePath() string
	// OwnerLocation returns the package location owning path in the bound state.
	OwnerLocation(path string) (string, bool)
}

// EngineObserver is notified about engine construction and resolution calls.
// Observers are diagnostic only and never influence a resolution result.
//
//go:generate go run go.uber.org/mock/mockgen -source=observer.go -destination=mocks/mock_observer.go -package=mocks
type EngineObserver interface {
	// OnEngineCreated is called once when an engine is constructed.
	OnEngineCreated(e EngineInstance)
	// OnResolve is called before an engine resolves a request for issuer.
	OnResolve(e EngineInstance, issuer string)
}
