package model

import "fmt"

// ExitCode defines the process exit codes returned by nestgen.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully, or was
	// purely informational (help, doctor).
	ExitSuccess ExitCode = 0

	// ExitGeneralError covers validation failures, missing scripts,
	// failed preconditions and generator failures alike.
	ExitGeneralError ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ValidationError reports a configuration field that is empty or invalid
// after every source (flags, prompts, defaults) has been exhausted.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MissingCollaboratorError reports an external script or directory that
// nestgen expected to find but did not.
type MissingCollaboratorError struct {
	// Label names the collaborator for the operator (e.g. "project generator").
	Label string

	// Path is where the collaborator was expected.
	Path string
}

func (e *MissingCollaboratorError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Label, e.Path)
}

// PreconditionError reports that a command was run outside the context it
// requires, e.g. `module` outside a generated project root.
type PreconditionError struct {
	Path string
	Hint string
}

func (e *PreconditionError) Error() string {
	msg := fmt.Sprintf("%s is not a generated project root", e.Path)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// GeneratorFailure reports that the external generator exited non-zero.
// The generator has already written its own diagnostics to the shared
// terminal, so only the status is carried here.
type GeneratorFailure struct {
	Script     string
	ExitStatus int
}

func (e *GeneratorFailure) Error() string {
	return fmt.Sprintf("generator %s exited with status %d", e.Script, e.ExitStatus)
}
