// Package generator invokes the external bash generators with nestgen's
// parameter contract.
//
// Project generation receives its configuration as environment variables
// (APP_NAME, PROJECT_PATH, PM, ORM, WITH_SWAGGER, WITH_DOCKER, WITH_GIT,
// MODULES). Module generation receives the module name and ORM as two
// positional arguments.
//
// Exactly one child runs at a time and the caller blocks until it exits.
// There are no retries, and nothing the generator wrote is rolled back on
// failure: that is the generator's own responsibility.
package generator

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/shinji-kodama/nestgen/internal/model"
)

// Environment variable names of the project generator contract.
const (
	EnvAppName     = "APP_NAME"
	EnvProjectPath = "PROJECT_PATH"
	EnvPM          = "PM"
	EnvORM         = "ORM"
	EnvWithSwagger = "WITH_SWAGGER"
	EnvWithDocker  = "WITH_DOCKER"
	EnvWithGit     = "WITH_GIT"
	EnvModules     = "MODULES"
)

// Collaborator labels used in MissingCollaboratorError.
const (
	labelProjectGenerator = "project generator script"
	labelModuleGenerator  = "module generator script"
)

// Invoker runs the generator scripts located by an ExecutionContext.
type Invoker struct {
	ec     model.ExecutionContext
	runner ProcessRunner
	logger *zap.Logger
}

// NewInvoker creates an Invoker. A nil logger disables logging.
func NewInvoker(ec model.ExecutionContext, runner ProcessRunner, logger *zap.Logger) *Invoker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invoker{ec: ec, runner: runner, logger: logger}
}

// ProjectEnv serializes an InitConfig into the project generator's
// environment contract. Booleans become "y"/"n"; modules are space-joined.
func ProjectEnv(cfg *model.InitConfig) map[string]string {
	return map[string]string{
		EnvAppName:     cfg.ProjectName,
		EnvProjectPath: cfg.ProjectPath,
		EnvPM:          cfg.PackageManager.String(),
		EnvORM:         cfg.ORM.String(),
		EnvWithSwagger: yesNo(cfg.WithSwagger),
		EnvWithDocker:  yesNo(cfg.WithDocker),
		EnvWithGit:     yesNo(cfg.WithGit),
		EnvModules:     strings.Join(cfg.Modules, " "),
	}
}

// ModuleArgs serializes a ModuleConfig into the module generator's
// positional contract: name, then ORM.
func ModuleArgs(cfg *model.ModuleConfig) []string {
	return []string{cfg.ModuleName, cfg.ORM.String()}
}

// GenerateProject runs generate_project.sh for cfg from the working directory.
func (inv *Invoker) GenerateProject(ctx context.Context, cfg *model.InitConfig) error {
	return inv.Invoke(ctx, labelProjectGenerator, Command{
		Script: inv.ec.GeneratorScriptPath,
		Env:    ProjectEnv(cfg),
		Dir:    inv.ec.WorkDir,
	})
}

// GenerateModule runs features/add_module.sh for cfg inside projectDir.
func (inv *Invoker) GenerateModule(ctx context.Context, cfg *model.ModuleConfig, projectDir string) error {
	return inv.Invoke(ctx, labelModuleGenerator, Command{
		Script: inv.ec.ModuleScriptPath,
		Args:   ModuleArgs(cfg),
		Dir:    projectDir,
	})
}

// Invoke verifies that the script exists, runs it and maps the outcome.
//
// Returns *model.MissingCollaboratorError without running anything when the
// script is absent, and *model.GeneratorFailure on a non-zero exit.
func (inv *Invoker) Invoke(ctx context.Context, label string, cmd Command) error {
	info, err := os.Stat(cmd.Script)
	if err != nil || info.IsDir() {
		return &model.MissingCollaboratorError{Label: label, Path: cmd.Script}
	}

	inv.logger.Debug("launching generator",
		zap.String("script", cmd.Script),
		zap.Strings("args", cmd.Args),
		zap.Int("env", len(cmd.Env)),
		zap.String("dir", cmd.Dir))

	outcome, err := inv.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}

	inv.logger.Debug("generator finished",
		zap.String("script", cmd.Script),
		zap.Int("exitCode", outcome.ExitCode))

	if !outcome.Success() {
		return &model.GeneratorFailure{Script: cmd.Script, ExitStatus: outcome.ExitCode}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}
