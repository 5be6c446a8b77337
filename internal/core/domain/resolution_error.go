package domain

import (
	"errors"
	"io/fs"
	"syscall"
)

// ErrorCode is the stable, machine-readable identifier of a resolution failure.
type ErrorCode string

const (
	CodeUndeclaredDependency          ErrorCode = "UNDECLARED_DEPENDENCY"
	CodeMissingPeerDependency         ErrorCode = "MISSING_PEER_DEPENDENCY"
	CodeQualifiedPathResolutionFailed ErrorCode = "QUALIFIED_PATH_RESOLUTION_FAILED"
	CodeInvalidJSON                   ErrorCode = "INVALID_JSON"
	CodeBadSpecifier                  ErrorCode = "BAD_SPECIFIER"
	CodeInternal                      ErrorCode = "INTERNAL"
)

var sentinels = map[ErrorCode]error{
	CodeUndeclaredDependency:          ErrUndeclaredDependency,
	CodeMissingPeerDependency:         ErrMissingPeerDependency,
	CodeQualifiedPathResolutionFailed: ErrQualifiedPathResolutionFailed,
	CodeInvalidJSON:                   ErrInvalidJSON,
	CodeBadSpecifier:                  ErrBadSpecifier,
}

// ResolutionError is the structured failure returned by the resolution engine.
// Data carries everything needed to render a diagnostic without querying the registry again.
type ResolutionError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// NewResolutionError creates a ResolutionError.
func NewResolutionError(code ErrorCode, message string, data map[string]any) *ResolutionError {
	if data == nil {
		data = make(map[string]any)
	}
	return &ResolutionError{Code: code, Message: message, Data: data}
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel matching the error code so errors.Is works against domain sentinels.
func (e *ResolutionError) Unwrap() error {
	return sentinels[e.Code]
}

// AsResolutionError converts any error into the wire shape.
// Resolution errors are returned as-is; host filesystem errors keep their errno name as code.
func AsResolutionError(err error) *ResolutionError {
	if err == nil {
		return nil
	}

	var re *ResolutionError
	if errors.As(err, &re) {
		return re
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		code := CodeInternal
		var errno syscall.Errno
		if errors.As(pathErr.Err, &errno) {
			if name := errnoName(errno); name != "" {
				code = ErrorCode(name)
			}
		} else if errors.Is(pathErr.Err, fs.ErrNotExist) {
			code = "ENOENT"
		}
		return NewResolutionError(code, err.Error(), map[string]any{
			"syscall": pathErr.Op,
			"path":    pathErr.Path,
		})
	}

	return NewResolutionError(CodeInternal, err.Error(), nil)
}

func errnoName(errno syscall.Errno) string {
	switch errno {
	case syscall.ENOENT:
		return "ENOENT"
	case syscall.EACCES:
		return "EACCES"
	case syscall.EPERM:
		return "EPERM"
	case syscall.EROFS:
		return "EROFS"
	case syscall.ENOTDIR:
		return "ENOTDIR"
	case syscall.EISDIR:
		return "EISDIR"
	default:
		return ""
	}
}
