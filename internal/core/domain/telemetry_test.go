package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pnp/internal/core/domain"
)

func TestNormalizeSpanStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.SpanStatus
	}{
		{"resolved", domain.SpanStatusResolved},
		{"deferred", domain.SpanStatusDeferred},
		{"failed", domain.SpanStatusFailed},
		{"unknown", domain.SpanStatusResolved},
		{"", domain.SpanStatusResolved},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.NormalizeSpanStatus(tt.input))
		})
	}
}
