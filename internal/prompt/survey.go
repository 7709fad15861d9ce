package prompt

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Survey is the terminal Prompter. It renders questions with survey/v2 on
// the configured streams.
type Survey struct {
	in  terminal.FileReader
	out terminal.FileWriter
	err io.Writer
}

// NewSurvey creates a Survey prompter attached to the process's stdio.
func NewSurvey() *Survey {
	return NewSurveyWithStdio(os.Stdin, os.Stdout, os.Stderr)
}

// NewSurveyWithStdio creates a Survey prompter on explicit streams.
func NewSurveyWithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *Survey {
	return &Survey{in: in, out: out, err: errOut}
}

func (s *Survey) stdio() survey.AskOpt {
	return survey.WithStdio(s.in, s.out, s.err)
}

// AskText implements Prompter.
func (s *Survey) AskText(message, def string) (string, error) {
	var answer string
	q := &survey.Input{Message: message, Default: def}
	if err := survey.AskOne(q, &answer, s.stdio()); err != nil {
		return "", translate(err)
	}
	return strings.TrimSpace(answer), nil
}

// AskChoice implements Prompter.
func (s *Survey) AskChoice(message string, choices []string, def string) (string, error) {
	var answer string
	q := &survey.Select{Message: message, Options: choices}
	// survey rejects a Default that is not among Options.
	for _, c := range choices {
		if c == def {
			q.Default = def
			break
		}
	}
	if err := survey.AskOne(q, &answer, s.stdio()); err != nil {
		return "", translate(err)
	}
	return answer, nil
}

// AskConfirm implements Prompter.
func (s *Survey) AskConfirm(message string, def bool) (bool, error) {
	var answer bool
	q := &survey.Confirm{Message: message, Default: def}
	if err := survey.AskOne(q, &answer, s.stdio()); err != nil {
		return false, translate(err)
	}
	return answer, nil
}

// AskList implements Prompter.
func (s *Survey) AskList(message, def string) ([]string, error) {
	answer, err := s.AskText(message, def)
	if err != nil {
		return nil, err
	}
	return SplitList(answer), nil
}

// translate maps survey's interrupt sentinel to ErrCancelled.
func translate(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCancelled
	}
	return err
}
