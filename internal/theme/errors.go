package theme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies well-known resolution error categories.
type ErrorCode string

const (
	ErrCodeCyclicToken      ErrorCode = "CYCLIC_TOKEN_DEPENDENCY"
	ErrCodeUnknownToken     ErrorCode = "UNKNOWN_TOKEN_DEPENDENCY"
	ErrCodeUnknownComponent ErrorCode = "UNKNOWN_COMPONENT"
	ErrCodeMerge            ErrorCode = "MERGE_ERROR"
	ErrCodeStyle            ErrorCode = "STYLE_ERROR"
)

// ResolutionError is a typed error enriched with contextual data. Resolution
// errors are surfaced to the caller and never cached.
type ResolutionError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

func (e *ResolutionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As usage.
func (e *ResolutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is allows errors.Is comparisons by code.
func (e *ResolutionError) Is(target error) bool {
	var other *ResolutionError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// CodeOf extracts the ErrorCode from an error chain, or "" when the chain
// carries no ResolutionError.
func CodeOf(err error) ErrorCode {
	var resErr *ResolutionError
	if errors.As(err, &resErr) {
		return resErr.Code
	}
	return ""
}

func newResolutionError(code ErrorCode, message string, cause error, context map[string]any) *ResolutionError {
	return &ResolutionError{Code: code, Message: message, Cause: cause, Context: context}
}

func newCycleError(path []string) *ResolutionError {
	return newResolutionError(ErrCodeCyclicToken,
		fmt.Sprintf("token dependency cycle: %s", strings.Join(path, " -> ")),
		nil, map[string]any{"path": path})
}

func newUnknownDependencyError(token, dependency string) *ResolutionError {
	return newResolutionError(ErrCodeUnknownToken,
		fmt.Sprintf("token %q depends on unknown token %q", token, dependency),
		nil, map[string]any{"token": token, "dependency": dependency})
}

func newMergeError(stage string, cause error) *ResolutionError {
	return newResolutionError(ErrCodeMerge, stage, cause, nil)
}
