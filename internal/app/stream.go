package app

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"go.trai.ch/pnp/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// maxLineSize bounds one request line in stream mode. Longer lines are skipped and answered with INVALID_JSON.
const maxLineSize = 1 << 20

// request is one complete input line. Overflow marks a line longer than maxLineSize, whose text is dropped.
type request struct {
	line     string
	overflow bool
}

// Stream answers newline-delimited [request, issuer] arrays read from in, one reply line per request line,
// in input order. Lines that are not valid requests get an INVALID_JSON reply and the stream continues.
// A trailing line without a newline is incomplete and gets no reply.
func (s *Session) Stream(ctx context.Context, in io.Reader, out io.Writer) error {
	requests := make(chan request)
	g, ctx := errgroup.WithContext(ctx)

	// Reader Routine
	g.Go(func() error {
		defer close(requests)
		return readRequests(ctx, bufio.NewReader(in), requests)
	})

	// Resolver Routine
	g.Go(func() error {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		for req := range requests {
			var reply Reply
			if req.overflow {
				reply = Reply{Error: lineTooLong()}
			} else {
				reply = s.answer(ctx, req.line)
			}
			if err := enc.Encode(reply); err != nil {
				return zerr.Wrap(err, "failed to write reply")
			}
		}
		return nil
	})

	return g.Wait()
}

func readRequests(ctx context.Context, r *bufio.Reader, out chan<- request) error {
	var (
		buf      []byte
		overflow bool
	)
	for {
		chunk, err := r.ReadSlice('\n')
		if !overflow {
			// +2 leaves room for the CRLF terminator.
			if len(buf)+len(chunk) > maxLineSize+2 {
				overflow = true
				buf = buf[:0]
			} else {
				buf = append(buf, chunk...)
			}
		}

		switch {
		case err == nil:
			line := strings.TrimSuffix(strings.TrimSuffix(string(buf), "\n"), "\r")
			req := request{line: line, overflow: overflow || len(line) > maxLineSize}
			if req.overflow {
				req.line = ""
			}
			select {
			case out <- req:
			case <-ctx.Done():
				return ctx.Err()
			}
			buf, overflow = buf[:0], false
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			return nil
		default:
			return zerr.Wrap(err, "failed to read requests")
		}
	}
}

func (s *Session) answer(ctx context.Context, line string) Reply {
	var pair [2]*string
	if err := json.Unmarshal([]byte(line), &pair); err != nil {
		return Reply{Error: invalidJSON(line, err.Error())}
	}
	if pair[0] == nil {
		return Reply{Error: invalidJSON(line, "expected a [request, issuer] array")}
	}

	issuer := ""
	if pair[1] != nil {
		issuer = *pair[1]
	}
	return s.ResolveOne(ctx, *pair[0], issuer)
}

func invalidJSON(line, reason string) *domain.ResolutionError {
	return domain.NewResolutionError(domain.CodeInvalidJSON, "Invalid JSON request: "+reason, map[string]any{
		"line": line,
	})
}

func lineTooLong() *domain.ResolutionError {
	return domain.NewResolutionError(domain.CodeInvalidJSON, "Invalid JSON request: line too long", map[string]any{
		"reason": "line too long",
		"limit":  maxLineSize,
	})
}
