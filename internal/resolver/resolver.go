// Package resolver turns raw CLI arguments or interactive answers into a
// fully populated, validated configuration.
//
// Two strategies exist:
//   - flag-driven: scan the raw arguments for --key=value tokens and fall
//     back to schema defaults for anything absent;
//   - interactive: ask every schema field strictly in order through a
//     prompt.Prompter, pre-filling each default.
//
// Resolution fails with *model.ValidationError when a required value is
// still empty after all sources are exhausted. Callers must not invoke a
// generator in that case.
package resolver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/nestgen/internal/model"
	"github.com/shinji-kodama/nestgen/internal/prompt"
	"github.com/shinji-kodama/nestgen/internal/schema"
)

// MaxAttempts bounds how often a required field is re-asked after an
// empty answer before resolution gives up.
const MaxAttempts = 3

// Answers holds the interactive result keyed by FieldSpec.Key. Values are
// string for text and choice fields, bool for confirm fields and []string
// for list fields.
type Answers map[string]any

// String returns the answer for key as a string ("" if absent).
func (a Answers) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// Bool returns the answer for key as a bool (false if absent).
func (a Answers) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// List returns the answer for key as a list (nil if absent).
func (a Answers) List(key string) []string {
	l, _ := a[key].([]string)
	return l
}

// ResolveInteractive asks every field in order and collects the answers.
//
// Fields are never skipped or reordered. A required field that comes back
// empty is asked again, up to MaxAttempts times in total.
func ResolveInteractive(ctx context.Context, p prompt.Prompter, fields []model.FieldSpec) (Answers, error) {
	answers := make(Answers, len(fields))
	for _, f := range fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value, err := askField(p, f)
		if err != nil {
			return nil, err
		}
		answers[f.Key] = value
	}
	return answers, nil
}

// askField asks a single field, re-prompting required fields on empty input.
func askField(p prompt.Prompter, f model.FieldSpec) (any, error) {
	for attempt := 1; ; attempt++ {
		value, err := askOnce(p, f)
		if err != nil {
			return nil, err
		}
		if !f.Required || !isEmpty(value) {
			return value, nil
		}
		if attempt >= MaxAttempts {
			return nil, model.NewValidationError(f.Key, "a value is required")
		}
	}
}

func askOnce(p prompt.Prompter, f model.FieldSpec) (any, error) {
	switch f.Kind {
	case model.KindText:
		return p.AskText(f.Message, f.DefaultString())
	case model.KindChoice:
		return p.AskChoice(f.Message, f.Choices, f.DefaultString())
	case model.KindConfirm:
		return p.AskConfirm(f.Message, f.DefaultBool())
	case model.KindList:
		return p.AskList(f.Message, f.DefaultString())
	default:
		return nil, fmt.Errorf("field %s: unsupported kind %q", f.Key, f.Kind)
	}
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	default:
		return false
	}
}

// ResolveInit runs the interactive init flow and builds an InitConfig.
// The project path is made absolute against workDir.
func ResolveInit(ctx context.Context, p prompt.Prompter, workDir string) (*model.InitConfig, error) {
	answers, err := ResolveInteractive(ctx, p, schema.InitFields())
	if err != nil {
		return nil, err
	}

	cfg := &model.InitConfig{
		ProjectName:    strings.TrimSpace(answers.String(schema.KeyProjectName)),
		ProjectPath:    absPath(workDir, answers.String(schema.KeyProjectPath)),
		PackageManager: model.PackageManager(answers.String(schema.KeyPackageManager)),
		ORM:            model.ORM(answers.String(schema.KeyORM)),
		WithSwagger:    answers.Bool(schema.KeyWithSwagger),
		WithDocker:     answers.Bool(schema.KeyWithDocker),
		WithGit:        answers.Bool(schema.KeyWithGit),
		Modules:        answers.List(schema.KeyModules),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveModule picks the resolution strategy for `nestgen module`.
//
// raw holds the arguments after the command token. Any argument at all
// (a positional name and/or flags) selects flag-driven resolution;
// otherwise the operator is asked interactively.
func ResolveModule(ctx context.Context, p prompt.Prompter, raw []string) (*model.ModuleConfig, error) {
	if len(raw) > 0 {
		return ResolveModuleFromArgs(raw)
	}

	answers, err := ResolveInteractive(ctx, p, schema.ModuleFields())
	if err != nil {
		return nil, err
	}
	cfg := &model.ModuleConfig{
		ModuleName: strings.TrimSpace(answers.String(schema.KeyModuleName)),
		ORM:        model.ORM(answers.String(schema.KeyORM)),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveModuleFromArgs is the flag-driven strategy for `nestgen module`.
//
// The first positional argument is the module name regardless of flags.
// --moduleName= and --name= are accepted when no positional is given.
// --orm= selects the ORM; absence falls back to the schema default.
// Unrecognised keys are ignored.
func ResolveModuleFromArgs(raw []string) (*model.ModuleConfig, error) {
	positional, flags := ParseFlags(raw)
	fields := schema.ModuleFields()

	cfg := &model.ModuleConfig{}
	switch {
	case len(positional) > 0:
		cfg.ModuleName = positional[0]
	case flags[schema.KeyModuleName] != "":
		cfg.ModuleName = flags[schema.KeyModuleName]
	default:
		cfg.ModuleName = flags["name"]
	}
	cfg.ModuleName = strings.TrimSpace(cfg.ModuleName)

	orm := flagOrDefault(flags, fields, schema.KeyORM)
	cfg.ORM = model.ORM(strings.ToLower(orm))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseFlags splits raw arguments into positionals and --key=value flags.
//
// Only the --key=value form carries a value. Bare switches such as
// --verbose or -v are dropped here; the command layer interprets them.
// A repeated key keeps its last value.
func ParseFlags(raw []string) (positional []string, flags map[string]string) {
	flags = make(map[string]string)
	for _, arg := range raw {
		if !strings.HasPrefix(arg, "-") {
			positional = append(positional, arg)
			continue
		}
		key, value, ok := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !ok || key == "" {
			continue
		}
		flags[key] = value
	}
	return positional, flags
}

func flagOrDefault(flags map[string]string, fields []model.FieldSpec, key string) string {
	if v, ok := flags[key]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if f, ok := schema.Lookup(fields, key); ok {
		return f.DefaultString()
	}
	return ""
}

func absPath(workDir, p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		p = "."
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(workDir, p)
	}
	return filepath.Clean(p)
}
