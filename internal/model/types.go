// Package model defines the domain types for the nestgen CLI.
//
// Every value in this package is transient: configurations are resolved once
// per invocation, handed to the external generator, and discarded. Nothing
// here is persisted by nestgen itself.
package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CommandName identifies which top-level command the operator invoked.
// Dispatch is one-shot: a process runs exactly one command and exits.
type CommandName string

const (
	// CommandInit scaffolds a new NestJS project.
	CommandInit CommandName = "init"

	// CommandModule adds a feature module to an existing generated project.
	CommandModule CommandName = "module"

	// CommandDoctor runs the environment diagnostics.
	CommandDoctor CommandName = "doctor"

	// CommandHelp prints the banner and usage. It is also the fallback
	// for any unrecognised or missing command token.
	CommandHelp CommandName = "help"
)

// String returns the string representation of CommandName.
func (c CommandName) String() string {
	return string(c)
}

// ParseCommandName maps a raw CLI token to a CommandName.
// Unknown tokens (including the empty string) map to CommandHelp,
// so this function never fails.
func ParseCommandName(token string) CommandName {
	switch CommandName(strings.TrimSpace(token)) {
	case CommandInit:
		return CommandInit
	case CommandModule:
		return CommandModule
	case CommandDoctor:
		return CommandDoctor
	default:
		return CommandHelp
	}
}

// PackageManager is the Node.js package manager the generated project uses.
type PackageManager string

const (
	PackageManagerPnpm PackageManager = "pnpm"
	PackageManagerYarn PackageManager = "yarn"
	PackageManagerNpm  PackageManager = "npm"
)

// PackageManagers lists the valid package managers in prompt order.
func PackageManagers() []string {
	return []string{string(PackageManagerPnpm), string(PackageManagerYarn), string(PackageManagerNpm)}
}

// String returns the string representation of PackageManager.
func (p PackageManager) String() string {
	return string(p)
}

// IsValid reports whether p is one of the supported package managers.
func (p PackageManager) IsValid() bool {
	switch p {
	case PackageManagerPnpm, PackageManagerYarn, PackageManagerNpm:
		return true
	default:
		return false
	}
}

// ParsePackageManager converts a string to a PackageManager.
// The comparison is case-insensitive.
func ParsePackageManager(s string) (PackageManager, error) {
	pm := PackageManager(strings.ToLower(strings.TrimSpace(s)))
	if !pm.IsValid() {
		return "", fmt.Errorf("invalid package manager %q: valid values are %s",
			s, strings.Join(PackageManagers(), ", "))
	}
	return pm, nil
}

// ORM selects the persistence layer scaffolded into the project or module.
type ORM string

const (
	ORMTypeORM ORM = "typeorm"
	ORMPrisma  ORM = "prisma"
)

// ORMs lists the valid ORMs in prompt order. The first entry is the default.
func ORMs() []string {
	return []string{string(ORMTypeORM), string(ORMPrisma)}
}

// String returns the string representation of ORM.
func (o ORM) String() string {
	return string(o)
}

// IsValid reports whether o is one of the supported ORMs.
func (o ORM) IsValid() bool {
	switch o {
	case ORMTypeORM, ORMPrisma:
		return true
	default:
		return false
	}
}

// ParseORM converts a string to an ORM. The comparison is case-insensitive.
func ParseORM(s string) (ORM, error) {
	o := ORM(strings.ToLower(strings.TrimSpace(s)))
	if !o.IsValid() {
		return "", fmt.Errorf("invalid orm %q: valid values are %s", s, strings.Join(ORMs(), ", "))
	}
	return o, nil
}

// FieldKind tells the resolver which prompt style a field uses.
type FieldKind string

const (
	// KindText is a free-text answer.
	KindText FieldKind = "text"

	// KindChoice is a single choice from FieldSpec.Choices.
	KindChoice FieldKind = "choice"

	// KindConfirm is a yes/no answer.
	KindConfirm FieldKind = "confirm"

	// KindList is free text split on whitespace into a list.
	KindList FieldKind = "list"
)

// String returns the string representation of FieldKind.
func (k FieldKind) String() string {
	return string(k)
}

// FieldSpec describes one configurable value: how it is asked, what the
// default is and which values are allowed.
//
// Default holds a string for KindText, KindChoice and KindList fields
// and a bool for KindConfirm fields.
type FieldSpec struct {
	// Key is the stable identifier, also used as the --key=value flag name.
	Key string

	// Message is the question shown to the operator.
	Message string

	// Kind selects the prompt style.
	Kind FieldKind

	// Default pre-fills the prompt and is used when a flag is absent.
	Default any

	// Choices enumerates the allowed values for KindChoice fields.
	Choices []string

	// Required fields reject empty answers.
	Required bool
}

// DefaultString returns the default as a string, or "" for non-string defaults.
func (f FieldSpec) DefaultString() string {
	if s, ok := f.Default.(string); ok {
		return s
	}
	return ""
}

// DefaultBool returns the default as a bool, or false for non-bool defaults.
func (f FieldSpec) DefaultBool() bool {
	if b, ok := f.Default.(bool); ok {
		return b
	}
	return false
}

// HasChoice reports whether value is one of the field's enumerated choices.
func (f FieldSpec) HasChoice(value string) bool {
	for _, c := range f.Choices {
		if c == value {
			return true
		}
	}
	return false
}

// InitConfig is the resolved configuration for project creation.
// It is serialized into environment variables for generate_project.sh.
type InitConfig struct {
	ProjectName    string         `json:"projectName"`
	ProjectPath    string         `json:"projectPath"`
	PackageManager PackageManager `json:"packageManager"`
	ORM            ORM            `json:"orm"`
	WithSwagger    bool           `json:"withSwagger"`
	WithDocker     bool           `json:"withDocker"`
	WithGit        bool           `json:"withGit"`
	Modules        []string       `json:"modules"`
}

// Validate enforces the InitConfig invariants. It returns a
// *ValidationError naming the first offending field.
func (c *InitConfig) Validate() error {
	if strings.TrimSpace(c.ProjectName) == "" {
		return NewValidationError("projectName", "must not be empty")
	}
	if strings.TrimSpace(c.ProjectPath) == "" {
		return NewValidationError("projectPath", "must not be empty")
	}
	if !c.PackageManager.IsValid() {
		return NewValidationError("packageManager",
			fmt.Sprintf("%q is not one of %s", c.PackageManager, strings.Join(PackageManagers(), ", ")))
	}
	if !c.ORM.IsValid() {
		return NewValidationError("orm",
			fmt.Sprintf("%q is not one of %s", c.ORM, strings.Join(ORMs(), ", ")))
	}
	if len(c.Modules) == 0 {
		return NewValidationError("modules", "at least one module is required")
	}
	return nil
}

// ModuleConfig is the resolved configuration for module generation.
// It is passed positionally to add_module.sh.
type ModuleConfig struct {
	ModuleName string `json:"moduleName"`
	ORM        ORM    `json:"orm"`
}

// Validate enforces the ModuleConfig invariants.
func (c *ModuleConfig) Validate() error {
	if strings.TrimSpace(c.ModuleName) == "" {
		return NewValidationError("moduleName", "a module name is required")
	}
	if !c.ORM.IsValid() {
		return NewValidationError("orm",
			fmt.Sprintf("%q is not one of %s", c.ORM, strings.Join(ORMs(), ", ")))
	}
	return nil
}

// ExecutionContext holds the paths established once at startup.
// It is read-only after construction and passed explicitly to every
// component that needs a path, so tests can inject fake locations.
type ExecutionContext struct {
	// RootPath is the generator toolkit directory (nestjs-generator/).
	RootPath string

	// GeneratorScriptPath is RootPath/generate_project.sh.
	GeneratorScriptPath string

	// FeaturesPath is RootPath/features.
	FeaturesPath string

	// ModuleScriptPath is FeaturesPath/add_module.sh.
	ModuleScriptPath string

	// EntryPoint is the path of the running nestgen executable.
	EntryPoint string

	// WorkDir is the directory nestgen was invoked from.
	WorkDir string
}

// Toolkit layout relative to RootPath.
const (
	GeneratorScriptName = "generate_project.sh"
	FeaturesDirName     = "features"
	ModuleScriptName    = "add_module.sh"
)

// NewExecutionContext derives every script path from the toolkit root.
func NewExecutionContext(rootPath, entryPoint, workDir string) ExecutionContext {
	features := filepath.Join(rootPath, FeaturesDirName)
	return ExecutionContext{
		RootPath:            rootPath,
		GeneratorScriptPath: filepath.Join(rootPath, GeneratorScriptName),
		FeaturesPath:        features,
		ModuleScriptPath:    filepath.Join(features, ModuleScriptName),
		EntryPoint:          entryPoint,
		WorkDir:             workDir,
	}
}

// DiagnosticResult is one line of the doctor report.
type DiagnosticResult struct {
	Label string `json:"label" yaml:"label"`
	OK    bool   `json:"ok" yaml:"ok"`

	// Optional checks are advisory and do not affect the aggregate verdict.
	Optional bool `json:"optional,omitempty" yaml:"optional,omitempty"`
}
