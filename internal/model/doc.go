// Package model defines the domain types and value objects for the
// nestgen CLI.
//
// This package contains pure data structures with no external dependencies:
// the command enumeration, field schemas, resolved InitConfig/ModuleConfig
// values, the ExecutionContext built at startup and diagnostic results.
//
// The package also defines exit codes (ExitCode), the CLIError type that
// carries them, and the typed errors (ValidationError,
// MissingCollaboratorError, PreconditionError, GeneratorFailure) that
// command handlers wrap into CLIError.
package model
