package logger

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// messager describes an error that can report its own message without the chain.
type messager interface {
	Message() string
}

// metadataer describes an error carrying key-value metadata.
type metadataer interface {
	Metadata() map[string]any
}

type errorEntry struct {
	message  string
	metadata map[string]any
}

// collectErrorEntries walks a zerr chain. A standard error ends the walk with its full message.
// Metadata attached through an empty wrapper is folded into the next message.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	pending := map[string]any{}

	push := func(message string, metadata map[string]any) {
		for k, v := range pending {
			if metadata == nil {
				metadata = map[string]any{}
			}
			metadata[k] = v
		}
		pending = map[string]any{}
		entries = append(entries, errorEntry{message: message, metadata: metadata})
	}

	for current := err; current != nil; current = errors.Unwrap(current) {
		m, ok := current.(messager)
		if !ok {
			push(current.Error(), nil)
			break
		}

		var metadata map[string]any
		if md, ok := current.(metadataer); ok {
			metadata = md.Metadata()
		}
		if m.Message() == "" {
			for k, v := range metadata {
				pending[k] = v
			}
			continue
		}
		push(m.Message(), metadata)
	}

	if len(pending) > 0 && len(entries) > 0 {
		last := &entries[len(entries)-1]
		if last.metadata == nil {
			last.metadata = map[string]any{}
		}
		for k, v := range pending {
			last.metadata[k] = v
		}
	}
	return entries
}

// formatErrorEntries renders the main error, its metadata, and the causes below it.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.message, "\n")

		prefix, indent := "    → ", "      "
		if i == 0 {
			prefix, indent = "Error: ", "       "
		} else if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, prefix+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}

		keys := make([]string, 0, len(entry.metadata))
		for k := range entry.metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.metadata[k]))
		}
	}

	return strings.Join(lines, "\n")
}
