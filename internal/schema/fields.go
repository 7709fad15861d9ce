// Package schema declares the configurable fields of each nestgen command.
//
// The field order is significant: it is the order in which interactive
// questions are asked, and scripted answer replay depends on it staying
// stable. The package is pure data. Validation beyond the Choices
// enumeration lives in the model and resolver packages.
package schema

import "github.com/shinji-kodama/nestgen/internal/model"

// Init field keys. They double as documentation of the question order.
const (
	KeyProjectName    = "projectName"
	KeyProjectPath    = "projectPath"
	KeyPackageManager = "packageManager"
	KeyORM            = "orm"
	KeyWithSwagger    = "withSwagger"
	KeyWithDocker     = "withDocker"
	KeyWithGit        = "withGit"
	KeyModules        = "modules"
)

// Module field keys.
const (
	KeyModuleName = "moduleName"
)

// InitFields returns the ordered field specs for `nestgen init`.
// A fresh slice is returned on every call so callers cannot mutate the
// shared definition.
func InitFields() []model.FieldSpec {
	return []model.FieldSpec{
		{
			Key:      KeyProjectName,
			Message:  "Project name:",
			Kind:     model.KindText,
			Default:  "my-app",
			Required: true,
		},
		{
			Key:     KeyProjectPath,
			Message: "Where should the project be created?",
			Kind:    model.KindText,
			Default: ".",
		},
		{
			Key:     KeyPackageManager,
			Message: "Package manager:",
			Kind:    model.KindChoice,
			Default: string(model.PackageManagerPnpm),
			Choices: model.PackageManagers(),
		},
		{
			Key:     KeyORM,
			Message: "ORM:",
			Kind:    model.KindChoice,
			Default: string(model.ORMTypeORM),
			Choices: model.ORMs(),
		},
		{
			Key:     KeyWithSwagger,
			Message: "Add Swagger?",
			Kind:    model.KindConfirm,
			Default: true,
		},
		{
			Key:     KeyWithDocker,
			Message: "Add Docker support?",
			Kind:    model.KindConfirm,
			Default: false,
		},
		{
			Key:     KeyWithGit,
			Message: "Initialize a git repository?",
			Kind:    model.KindConfirm,
			Default: true,
		},
		{
			Key:      KeyModules,
			Message:  "Modules to generate (space separated):",
			Kind:     model.KindList,
			Default:  "user",
			Required: true,
		},
	}
}

// ModuleFields returns the ordered field specs for `nestgen module`.
// moduleName is the only mandatory field and has no default.
func ModuleFields() []model.FieldSpec {
	return []model.FieldSpec{
		{
			Key:      KeyModuleName,
			Message:  "Module name:",
			Kind:     model.KindText,
			Required: true,
		},
		{
			Key:     KeyORM,
			Message: "ORM:",
			Kind:    model.KindChoice,
			Default: string(model.ORMTypeORM),
			Choices: model.ORMs(),
		},
	}
}

// Lookup returns the field with the given key.
func Lookup(fields []model.FieldSpec, key string) (model.FieldSpec, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
	}
	return model.FieldSpec{}, false
}
