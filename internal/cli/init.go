package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/nestgen/internal/generator"
	"github.com/shinji-kodama/nestgen/internal/model"
	"github.com/shinji-kodama/nestgen/internal/prompt"
	"github.com/shinji-kodama/nestgen/internal/resolver"
)

// newInitCommand creates the "init" cobra command.
func newInitCommand(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a complete NestJS project",
		Long: `Ask for the project settings and run the project generator.

Every question has a default; press Enter to accept it. The answers are
passed to generate_project.sh as environment variables.

Examples:
  nestgen init
  nestgen init --verbose`,

		// Extra arguments are ignored.
		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.Context(), inv)
		},
	}
}

// runInit resolves an InitConfig interactively and runs the project
// generator with it.
func runInit(ctx context.Context, inv *invocation) error {
	app := inv.app
	if !IsJSONOutput() {
		printBanner(app.Stdout)
	}

	cfg, err := resolver.ResolveInit(ctx, app.Prompter, inv.ec.WorkDir)
	if err != nil {
		return resolveError(err)
	}
	VerboseLog("Resolved project %q at %s (pm=%s, orm=%s, modules=%v)",
		cfg.ProjectName, cfg.ProjectPath, cfg.PackageManager, cfg.ORM, cfg.Modules)

	gen := generator.NewInvoker(inv.ec, app.Runner, logger)
	if err := gen.GenerateProject(ctx, cfg); err != nil {
		return invokeError(err)
	}

	return printInitResult(app, cfg)
}

func printInitResult(app *App, cfg *model.InitConfig) error {
	if IsJSONOutput() {
		return printJSON(app.Stdout, struct {
			Command string             `json:"command"`
			Project *model.InitConfig `json:"project"`
		}{Command: string(model.CommandInit), Project: cfg})
	}

	fmt.Fprintf(app.Stdout, "\n✅ Project %q generated in %s\n", cfg.ProjectName, cfg.ProjectPath)
	return nil
}

// resolveError wraps a configuration resolution failure for the root
// error handler.
func resolveError(err error) error {
	if errors.Is(err, prompt.ErrCancelled) || errors.Is(err, context.Canceled) {
		return model.WrapCLIError(model.ExitGeneralError, "cancelled", err)
	}

	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		return model.WrapCLIError(model.ExitGeneralError, "configuration rejected", vErr)
	}
	return model.WrapCLIError(model.ExitGeneralError, "failed to resolve configuration", err)
}

// invokeError wraps a generator invocation failure for the root error
// handler.
func invokeError(err error) error {
	var missing *model.MissingCollaboratorError
	if errors.As(err, &missing) {
		return model.WrapCLIError(model.ExitGeneralError, "generator toolkit is incomplete", missing)
	}

	var failure *model.GeneratorFailure
	if errors.As(err, &failure) {
		return model.WrapCLIError(model.ExitGeneralError, "generation failed", failure)
	}
	return model.WrapCLIError(model.ExitGeneralError, "failed to run generator", err)
}
