package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/pnp/internal/core/ports"
)

// StatusAttribute is the span attribute holding the domain.SpanStatus of a resolution.
const StatusAttribute = "pnp.status"

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge implements sdktrace.SpanProcessor by logging finished spans.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge writing to logger.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart does nothing; spans are reported once they end.
func (b *Bridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, status, duration and string attributes.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}

	status := domain.SpanStatusResolved
	var parts []string
	for _, kv := range s.Attributes() {
		if string(kv.Key) == StatusAttribute {
			status = domain.NormalizeSpanStatus(kv.Value.AsString())
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", kv.Key, kv.Value.Emit()))
	}
	if s.Status().Code == codes.Error {
		status = domain.SpanStatusFailed
	}

	msg := fmt.Sprintf("%s %s in %s", s.Name(), status, s.EndTime().Sub(s.StartTime()))
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}
	b.logger.Info(msg)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(context.Context) error {
	return nil
}
