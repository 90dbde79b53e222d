package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Execution errors (fatal, abort the running pipeline)
const (
	// ErrCodeInvalidResult indicates an operation returned a non-context value.
	ErrCodeInvalidResult ErrorCode = "INVALID_RESULT"
	// ErrCodeUncallableOperation indicates a value in operation position is
	// neither a context mapping nor a callable.
	ErrCodeUncallableOperation ErrorCode = "UNCALLABLE_OPERATION"
	// ErrCodeOperationFailed indicates an operation returned an error.
	ErrCodeOperationFailed ErrorCode = "OPERATION_FAILED"
)

// Resolution errors (build-time)
const (
	// ErrCodeUnresolvedReference indicates a symbolic reference was not found
	// in the registry (surfaced only in strict mode).
	ErrCodeUnresolvedReference ErrorCode = "UNRESOLVED_REFERENCE"
	// ErrCodeBadParameter indicates a declaration parameter could not be
	// resolved, such as a ctx/ reference missing from the configuration.
	ErrCodeBadParameter ErrorCode = "BAD_PARAMETER"
	// ErrCodeInvalidDeclaration indicates a declarative pipeline definition
	// failed structural validation.
	ErrCodeInvalidDeclaration ErrorCode = "INVALID_DECLARATION"
)

// Generic errors
const (
	// ErrCodeNotFound indicates a named resource (pipeline file, registry
	// entry) was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)
