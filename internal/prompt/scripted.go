package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMoreAnswers is returned when a Scripted prompter runs out of answers.
var ErrNoMoreAnswers = errors.New("scripted prompter: no more answers")

// Scripted is a Prompter that replays a fixed sequence of answers instead of
// reading a terminal. An empty answer accepts the question's default, which
// mirrors pressing Enter on a pre-filled prompt.
//
// Confirm answers accept y/yes/n/no (case-insensitive). Choice answers must
// be one of the offered choices.
type Scripted struct {
	answers []string
	next    int

	// Asked records every message in the order it was asked.
	Asked []string
}

// NewScripted creates a Scripted prompter that replays answers in order.
func NewScripted(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

// Remaining returns how many answers have not been consumed.
func (s *Scripted) Remaining() int {
	return len(s.answers) - s.next
}

func (s *Scripted) pop(message string) (string, error) {
	s.Asked = append(s.Asked, message)
	if s.next >= len(s.answers) {
		return "", fmt.Errorf("%w (asked %q)", ErrNoMoreAnswers, message)
	}
	a := s.answers[s.next]
	s.next++
	return strings.TrimSpace(a), nil
}

// AskText implements Prompter.
func (s *Scripted) AskText(message, def string) (string, error) {
	a, err := s.pop(message)
	if err != nil {
		return "", err
	}
	if a == "" {
		return def, nil
	}
	return a, nil
}

// AskChoice implements Prompter.
func (s *Scripted) AskChoice(message string, choices []string, def string) (string, error) {
	a, err := s.pop(message)
	if err != nil {
		return "", err
	}
	if a == "" {
		a = def
	}
	for _, c := range choices {
		if c == a {
			return a, nil
		}
	}
	return "", fmt.Errorf("scripted answer %q for %q is not one of %s", a, message, strings.Join(choices, ", "))
}

// AskConfirm implements Prompter.
func (s *Scripted) AskConfirm(message string, def bool) (bool, error) {
	a, err := s.pop(message)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(a) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("scripted answer %q for %q is not y/n", a, message)
	}
}

// AskList implements Prompter.
func (s *Scripted) AskList(message, def string) ([]string, error) {
	a, err := s.pop(message)
	if err != nil {
		return nil, err
	}
	if a == "" {
		return SplitList(def), nil
	}
	return SplitList(a), nil
}
