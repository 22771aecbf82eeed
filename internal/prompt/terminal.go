package prompt

import (
	"errors"
	"io"
	"os"

	"github.com/chzyer/readline"
)

// Terminal is an interactive prompter with line editing and hidden
// password entry.
type Terminal struct {
	rl *readline.Instance
}

// NewTerminal opens a readline instance on in and out. History is kept in
// memory only and never includes password entries.
func NewTerminal(in *os.File, out io.Writer) (*Terminal, error) {
	rl, err := readline.NewEx(&readline.Config{
		Stdin:           in,
		Stdout:          out,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		HistoryLimit:    100,
	})
	if err != nil {
		return nil, err
	}
	return &Terminal{rl: rl}, nil
}

// ReadLine implements Prompter.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	t.rl.SetPrompt(prompt)
	line, err := t.rl.Readline()
	if err != nil {
		return "", mapErr(err)
	}
	return line, nil
}

// ReadPassword implements Prompter.
func (t *Terminal) ReadPassword(prompt string) ([]byte, error) {
	pw, err := t.rl.ReadPassword(prompt)
	if err != nil {
		return nil, mapErr(err)
	}
	return pw, nil
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	return t.rl.Close()
}

func mapErr(err error) error {
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return ErrCancelled
	}
	return err
}
