// Package prompt reads answers, passwords and confirmations from the user.
package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrCancelled is returned when the user interrupts a prompt with Ctrl-C or
// closes the input.
var ErrCancelled = errors.New("cancelled")

// Prompter asks the user for input.
type Prompter interface {
	// ReadLine shows prompt and returns the answer without its line ending.
	ReadLine(prompt string) (string, error)
	// ReadPassword reads an answer without echoing it where possible.
	ReadPassword(prompt string) ([]byte, error)
}

// Closer is a Prompter holding terminal state that must be released.
type Closer interface {
	Prompter
	io.Closer
}

// Open returns a readline prompter when in is a terminal and a plain
// line reader otherwise.
func Open(in *os.File, out io.Writer) (Closer, error) {
	if term.IsTerminal(int(in.Fd())) {
		return NewTerminal(in, out)
	}
	return NewPlain(in, out), nil
}

// Choose asks question until the answer is one of valid and returns it.
func Choose(p Prompter, out io.Writer, question string, valid ...string) (string, error) {
	for {
		answer, err := p.ReadLine(question)
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		for _, v := range valid {
			if answer == v {
				return answer, nil
			}
		}
		fmt.Fprintf(out, "Invalid option %q, choose one of %s.\n", answer, strings.Join(valid, ", "))
	}
}

// Confirm asks a yes/no question. An empty or unrecognized answer yields def.
func Confirm(p Prompter, question string, def bool) (bool, error) {
	suffix := " [y/N]: "
	if def {
		suffix = " [Y/n]: "
	}
	answer, err := p.ReadLine(question + suffix)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return def, nil
}

// ConfirmedPassword reads a password twice and repeats until both entries
// match.
func ConfirmedPassword(p Prompter, out io.Writer, first, second string) ([]byte, error) {
	for {
		pw, err := p.ReadPassword(first)
		if err != nil {
			return nil, err
		}
		again, err := p.ReadPassword(second)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(pw, again) {
			return pw, nil
		}
		fmt.Fprintln(out, "Passwords do not match, try again.")
	}
}

// WaitEnter blocks until the user presses Enter.
func WaitEnter(p Prompter, message string) error {
	_, err := p.ReadLine(message)
	return err
}
