package app

import (
	"context"
	"io"

	"go.trai.ch/pnp/internal/adapters/jsruntime"
	"go.trai.ch/pnp/internal/adapters/telemetry"
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/engine/patch"
	"go.trai.ch/pnp/internal/engine/resolver"
)

// Session is an engine bound to one project for the duration of a command.
type Session struct {
	Engine *resolver.Engine
	Config *domain.Config

	app      *App
	binding  *patch.Binding
	shutdown func(context.Context) error
}

// Resolve resolves one request inside a span.
func (s *Session) Resolve(
	ctx context.Context,
	request, issuer string,
	opts resolver.ResolveOptions,
) (string, bool, error) {
	_, span := s.app.tracer.Start(ctx, "resolve")
	defer span.End()

	span.SetAttribute("request", request)
	span.SetAttribute("issuer", issuer)

	resolved, ok, err := s.Engine.ResolveRequest(request, issuer, opts)
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetAttribute(telemetry.StatusAttribute, string(domain.SpanStatusFailed))
	case !ok:
		span.SetAttribute(telemetry.StatusAttribute, string(domain.SpanStatusDeferred))
	default:
		span.SetAttribute(telemetry.StatusAttribute, string(domain.SpanStatusResolved))
	}
	return resolved, ok, err
}

// ResolveOne resolves one request with the host defaults and shapes the outcome as a reply.
func (s *Session) ResolveOne(ctx context.Context, request, issuer string) Reply {
	resolved, ok, err := s.Resolve(ctx, request, issuer, resolver.DefaultResolveOptions())
	return NewReply(resolved, ok, err)
}

// Info returns the registry entry of name@reference.
func (s *Session) Info(name, reference string) (*domain.PackageInformation, error) {
	l := s.Engine.GetLocator(name, reference)
	info, ok := s.Engine.GetPackageInformation(l)
	if !ok {
		return nil, unknownLocator(l)
	}
	return info, nil
}

// Exec installs the engine into the host loader and evaluates entry.
func (s *Session) Exec(_ context.Context, entry string, args []string, stdout io.Writer) (any, error) {
	if err := patch.Setup(s.binding); err != nil {
		return nil, err
	}

	rt := jsruntime.NewRuntime(s.binding.Loader, stdout)
	rt.Provide(s.Engine.BackingPath(), apiExports(s.Engine))
	return rt.Exec(entry, args)
}

// Close flushes telemetry and releases the overlay.
func (s *Session) Close(ctx context.Context) error {
	if s.shutdown != nil {
		if err := s.shutdown(ctx); err != nil {
			return err
		}
	}
	if closer, ok := s.binding.FS.Target().(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
