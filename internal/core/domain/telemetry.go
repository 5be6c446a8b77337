package domain

// SpanStatus is the outcome recorded on a finished resolution span.
type SpanStatus string

const (
	// SpanStatusResolved marks a request the engine answered with a path.
	SpanStatusResolved SpanStatus = "resolved"
	// SpanStatusDeferred marks a request handed back to the host loader.
	SpanStatusDeferred SpanStatus = "deferred"
	// SpanStatusFailed marks a request that produced an error reply.
	SpanStatusFailed SpanStatus = "failed"
)

// NormalizeSpanStatus maps a recorded attribute back to a SpanStatus, defaulting to resolved.
func NormalizeSpanStatus(s string) SpanStatus {
	switch SpanStatus(s) {
	case SpanStatusDeferred:
		return SpanStatusDeferred
	case SpanStatusFailed:
		return SpanStatusFailed
	default:
		return SpanStatusResolved
	}
}
