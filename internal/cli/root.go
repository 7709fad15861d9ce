// Package cli implements the cobra-based CLI commands for nestgen.
//
// Each subcommand (init, module, doctor) is defined in its own file within
// this package. This file defines the root command that serves as the
// parent for all subcommands, handles global flags and maps errors to exit
// codes.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shinji-kodama/nestgen/internal/config"
	"github.com/shinji-kodama/nestgen/internal/doctor"
	"github.com/shinji-kodama/nestgen/internal/generator"
	"github.com/shinji-kodama/nestgen/internal/model"
	"github.com/shinji-kodama/nestgen/internal/prompt"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables debug logging on stderr.
	verbose bool

	// configFile is an optional YAML file locating the generator toolkit.
	configFile string
)

// logger is rebuilt for every invocation in PersistentPreRunE.
var logger = zap.NewNop()

// annotationAdvisory marks commands that must run even when the toolkit
// cannot be located. They report the failure instead of returning it.
const annotationAdvisory = "nestgen/advisory"

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// App bundles the collaborators a command needs. Tests replace them with
// scripted prompters, recording runners and fake probes.
type App struct {
	// LoadContext resolves the ExecutionContext from an optional config file.
	LoadContext func(configFile string) (model.ExecutionContext, error)

	// Prompter asks the operator interactive questions.
	Prompter prompt.Prompter

	// Runner launches generator scripts.
	Runner generator.ProcessRunner

	// Probes back the doctor checks.
	Probes doctor.Probes

	Stdout io.Writer
	Stderr io.Writer
}

// NewApp returns an App wired to the real terminal, filesystem and processes.
func NewApp() *App {
	return &App{
		LoadContext: func(configFile string) (model.ExecutionContext, error) {
			return config.NewLoader(configFile).Load()
		},
		Prompter: prompt.NewSurvey(),
		Runner:   generator.NewExecRunner(),
		Probes:   doctor.DefaultProbes(),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// invocation is the state of one command run. The ExecutionContext is set
// once in PersistentPreRunE and only read afterwards.
type invocation struct {
	app *App
	ec  model.ExecutionContext

	// loadErr is set instead of ec when an advisory command could not
	// resolve the toolkit.
	loadErr error
}

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action. Unknown and absent
// commands never reach cobra: Run routes them to the usage screen first.
func NewRootCommand(app *App) *cobra.Command {
	inv := &invocation{app: app}

	rootCmd := &cobra.Command{
		Use:   "nestgen",
		Short: "Modular NestJS project and module generator",
		Long: `nestgen collects project and module settings, interactively or from flags,
and hands them to the bundled bash generators.

The generators themselves live in the nestjs-generator toolkit directory
(next to the binary, or wherever NESTGEN_ROOT points).`,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Commands that take raw arguments still honour the global
			// switches; pick them out of the unparsed list.
			if cmd.DisableFlagParsing {
				applyGlobalSwitches(splitGlobalSwitches(args))
			}

			logger = newLogger(app.Stderr, verbose)

			ec, err := app.LoadContext(configFile)
			if err != nil {
				if cmd.Annotations[annotationAdvisory] == "true" {
					VerboseLog("Toolkit not resolved: %v", err)
					inv.loadErr = err
					return nil
				}
				return model.WrapCLIError(model.ExitGeneralError, "failed to resolve the generator toolkit", err)
			}
			inv.ec = ec
			VerboseLog("Toolkit root: %s", ec.RootPath)
			VerboseLog("Working directory: %s", ec.WorkDir)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (default: $"+config.EnvConfig+")")

	rootCmd.AddCommand(newInitCommand(inv))
	rootCmd.AddCommand(newModuleCommand(inv))
	rootCmd.AddCommand(newDoctorCommand(inv))

	rootCmd.SetOut(app.Stdout)
	rootCmd.SetErr(app.Stderr)

	return rootCmd
}

// newLogger builds a console logger on w. Without --verbose only warnings
// and errors are shown.
func newLogger(w io.Writer, debug bool) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""

	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// Run executes one nestgen invocation and returns the process exit code.
//
// The command is chosen by Dispatch. Help prints the banner and usage and
// succeeds without involving cobra, so unknown commands are informational
// rather than errors.
func Run(ctx context.Context, app *App, args []string) int {
	if Dispatch(args) == model.CommandHelp && !versionOnly(args) {
		printUsage(app.Stdout)
		return int(model.ExitSuccess)
	}

	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return reportError(app.Stderr, err)
	}
	return int(model.ExitSuccess)
}

// Execute runs nestgen with the process arguments and returns the exit
// code. This is the main entry point called from main.go.
func Execute(ctx context.Context) int {
	return Run(ctx, NewApp(), os.Args[1:])
}

// reportError prints err and translates it into an exit code. CLIError
// types carry their own exit codes; other errors default to exit code 1.
func reportError(w io.Writer, err error) int {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(w, cliErr.Message, cliErr.Err)
		return int(cliErr.Code)
	}

	printError(w, err.Error(), nil)
	return int(model.ExitGeneralError)
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// stdout is reserved for successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// VerboseLog writes a debug line through the invocation logger. It is
// silent unless --verbose is set.
func VerboseLog(format string, args ...interface{}) {
	logger.Sugar().Debugf(format, args...)
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to encode output", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
