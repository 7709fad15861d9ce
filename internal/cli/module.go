package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/nestgen/internal/generator"
	"github.com/shinji-kodama/nestgen/internal/model"
	"github.com/shinji-kodama/nestgen/internal/project"
	"github.com/shinji-kodama/nestgen/internal/resolver"
)

// initHint tells the operator how to get a project root.
const initHint = "run `nestgen init` first"

// newModuleCommand creates the "module" cobra command.
//
// Flag parsing is left to the resolver so that unknown flags are ignored
// and --key=value pairs map onto schema keys.
func newModuleCommand(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "module [name] [--orm=typeorm|prisma]",
		Short: "Generate a module (DDD/CQRS) in the current project",
		Long: `Generate a module inside a project created by nestgen init.

With a name or flags the module is generated directly; without arguments
the module name and ORM are asked interactively.

Examples:
  nestgen module user
  nestgen module billing --orm=prisma
  nestgen module`,

		DisableFlagParsing: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			switches := splitGlobalSwitches(args)
			if switches.help {
				return cmd.Help()
			}
			return runModule(cmd.Context(), inv, switches.rest)
		},
	}
}

// runModule resolves a ModuleConfig, checks that the working directory is
// a generated project and runs the module generator.
func runModule(ctx context.Context, inv *invocation, raw []string) error {
	app := inv.app
	if !IsJSONOutput() {
		printBanner(app.Stdout)
	}

	cfg, err := resolver.ResolveModule(ctx, app.Prompter, raw)
	if err != nil {
		return resolveError(err)
	}
	VerboseLog("Resolved module %q (orm=%s)", cfg.ModuleName, cfg.ORM)

	projectDir := inv.ec.WorkDir
	if !project.IsGeneratedProjectRoot(projectDir) {
		return model.WrapCLIError(model.ExitGeneralError, "cannot generate a module here",
			&model.PreconditionError{Path: projectDir, Hint: initHint})
	}

	if m, err := project.ReadManifest(projectDir); err != nil {
		VerboseLog("Could not inspect %s: %v", project.ManifestName, err)
	} else if !m.IsNestProject() {
		logger.Sugar().Warnf("%s does not declare @nestjs/core; continuing anyway", project.ManifestName)
	}

	gen := generator.NewInvoker(inv.ec, app.Runner, logger)
	if err := gen.GenerateModule(ctx, cfg, projectDir); err != nil {
		return invokeError(err)
	}

	return printModuleResult(app, cfg)
}

func printModuleResult(app *App, cfg *model.ModuleConfig) error {
	if IsJSONOutput() {
		return printJSON(app.Stdout, struct {
			Command string              `json:"command"`
			Module  *model.ModuleConfig `json:"module"`
		}{Command: string(model.CommandModule), Module: cfg})
	}

	fmt.Fprintf(app.Stdout, "\n✅ Module %q generated (%s)\n", cfg.ModuleName, cfg.ORM)
	return nil
}
