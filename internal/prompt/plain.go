package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Plain reads answers line by line from any reader. Passwords are echoed by
// whatever feeds the input; it is meant for pipes and scripts.
type Plain struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlain returns a prompter reading from in and writing prompts to out.
func NewPlain(in io.Reader, out io.Writer) *Plain {
	return &Plain{in: bufio.NewReader(in), out: out}
}

// ReadLine implements Prompter.
func (p *Plain) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPassword implements Prompter.
func (p *Plain) ReadPassword(prompt string) ([]byte, error) {
	line, err := p.ReadLine(prompt)
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

// Close implements io.Closer.
func (p *Plain) Close() error {
	return nil
}
