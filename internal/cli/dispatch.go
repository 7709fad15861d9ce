package cli

import (
	"strings"

	"github.com/shinji-kodama/nestgen/internal/model"
)

// valueFlags are global flags that may take their value as the next token.
var valueFlags = map[string]bool{
	"--config": true,
	"--format": true,
}

// Dispatch maps the raw argument list to the command it names.
//
// The first token that is not a flag (or a flag's value) decides. Unknown
// or absent commands map to model.CommandHelp.
func Dispatch(args []string) model.CommandName {
	token, ok := firstPositional(args)
	if !ok {
		return model.CommandHelp
	}
	return model.ParseCommandName(token)
}

// firstPositional returns the first token that is neither a flag nor the
// value of a flag. Scanning stops at "--".
func firstPositional(args []string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if strings.HasPrefix(arg, "-") {
			if valueFlags[arg] {
				i++
			}
			continue
		}
		return arg, true
	}
	return "", false
}

// versionOnly reports whether --version was requested without any command
// token, the only case handed to cobra's version printer.
func versionOnly(args []string) bool {
	if _, ok := firstPositional(args); ok {
		return false
	}
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "--version" {
			return true
		}
	}
	return false
}

// globalSwitches are the root flags recognised inside raw argument lists.
type globalSwitches struct {
	json       bool
	verbose    bool
	help       bool
	configFile string

	// rest holds every argument that is not a global switch.
	rest []string
}

// splitGlobalSwitches separates the root's switches from the arguments of
// a command that parses its own flags.
func splitGlobalSwitches(args []string) globalSwitches {
	var s globalSwitches
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--json":
			s.json = true
		case arg == "--verbose" || arg == "-v":
			s.verbose = true
		case arg == "--help" || arg == "-h":
			s.help = true
		case strings.HasPrefix(arg, "--config="):
			s.configFile = strings.TrimPrefix(arg, "--config=")
		case arg == "--config" && i+1 < len(args):
			i++
			s.configFile = args[i]
		default:
			s.rest = append(s.rest, arg)
		}
	}
	return s
}

func applyGlobalSwitches(s globalSwitches) {
	if s.json {
		jsonOutput = true
	}
	if s.verbose {
		verbose = true
	}
	if s.configFile != "" {
		configFile = s.configFile
	}
}
