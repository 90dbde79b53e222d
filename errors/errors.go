// Package errors provides unified error handling for pipekit.
// It implements structured error types with machine-readable codes so that
// build-time configuration failures and run-time contract violations can be
// told apart programmatically.
package errors

import "fmt"

// PipelineError is the unified error type for pipeline construction and
// execution failures.
type PipelineError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *PipelineError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *PipelineError) WithCause(cause error) *PipelineError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *PipelineError) WithDetail(key string, value any) *PipelineError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new PipelineError.
func New(code ErrorCode, message string) *PipelineError {
	return &PipelineError{Code: code, Message: message}
}

// CodeOf extracts the ErrorCode from an error, walking the cause chain.
// Returns ErrCodeInternal for non-pipeline errors.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if pe, ok := err.(*PipelineError); ok {
			return pe.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ErrCodeInternal
}

// --- Common Error Constructors ---

// InvalidResult creates an error for an operation that returned a non-context
// value. Slot identifies the operation position in the pipeline.
func InvalidResult(slot int) *PipelineError {
	return &PipelineError{
		Code: ErrCodeInvalidResult, Message: fmt.Sprintf("operation at slot %d returned a non-context result", slot),
		Details: map[string]any{"slot": slot},
	}
}

// UncallableOperation creates an error for a value in operation position that
// is neither a context mapping nor a callable.
func UncallableOperation(slot int, value any) *PipelineError {
	return &PipelineError{
		Code: ErrCodeUncallableOperation, Message: fmt.Sprintf("value at slot %d is not callable or a context mapping (got %T)", slot, value),
		Details: map[string]any{"slot": slot, "type": fmt.Sprintf("%T", value)},
	}
}

// OperationFailed creates an error wrapping a failure returned by an operation.
func OperationFailed(slot int, cause error) *PipelineError {
	return &PipelineError{
		Code: ErrCodeOperationFailed, Message: fmt.Sprintf("operation at slot %d failed", slot),
		Details: map[string]any{"slot": slot}, Cause: cause,
	}
}

// UnresolvedReference creates an error for a symbolic reference that was not
// found in the registry.
func UnresolvedReference(ref string) *PipelineError {
	return &PipelineError{
		Code: ErrCodeUnresolvedReference, Message: fmt.Sprintf("reference %q not found in registry", ref),
		Details: map[string]any{"ref": ref},
	}
}

// BadParameter creates an error for a declaration parameter that could not be
// resolved.
func BadParameter(param string, reason string) *PipelineError {
	return &PipelineError{
		Code: ErrCodeBadParameter, Message: fmt.Sprintf("parameter %q: %s", param, reason),
		Details: map[string]any{"param": param},
	}
}

// InvalidDeclaration creates an error for a declarative pipeline definition
// that failed validation.
func InvalidDeclaration(name string, cause error) *PipelineError {
	return &PipelineError{
		Code: ErrCodeInvalidDeclaration, Message: fmt.Sprintf("pipeline declaration %q is invalid", name),
		Details: map[string]any{"pipeline": name}, Cause: cause,
	}
}

// NotFound creates an error for a named resource that was not found.
func NotFound(resource, name string) *PipelineError {
	return &PipelineError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("%s %q not found", resource, name),
		Details: map[string]any{"resource": resource, "name": name},
	}
}

// Internal creates an error for an unexpected internal failure.
func Internal(cause error) *PipelineError {
	return &PipelineError{
		Code: ErrCodeInternal, Message: "an unexpected error occurred",
		Cause: cause,
	}
}
