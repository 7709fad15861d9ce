// Package prompt provides the interactive question capability used by the
// configuration resolver.
//
// The Prompter interface has one method per field kind. Survey is the
// terminal implementation built on github.com/AlecAivazis/survey/v2;
// Scripted replays a fixed answer sequence for tests and non-interactive
// replays.
package prompt

import (
	"errors"
	"strings"
)

// ErrCancelled is returned when the operator aborts a prompt (Ctrl-C).
var ErrCancelled = errors.New("prompt cancelled by user")

// Prompter asks one question at a time and blocks until it is answered.
// Every method pre-fills the given default; an empty answer selects it.
type Prompter interface {
	// AskText asks for a free-text answer.
	AskText(message, def string) (string, error)

	// AskChoice asks for exactly one of choices.
	AskChoice(message string, choices []string, def string) (string, error)

	// AskConfirm asks a yes/no question.
	AskConfirm(message string, def bool) (bool, error)

	// AskList asks for free text and splits it with SplitList.
	AskList(message, def string) ([]string, error)
}

// SplitList splits s on any run of whitespace and drops empty tokens.
// Order is preserved.
//
//	"user  billing " → ["user", "billing"]
//	"   "            → []
func SplitList(s string) []string {
	fields := strings.Fields(s)
	if fields == nil {
		return []string{}
	}
	return fields
}
