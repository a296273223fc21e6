// Package prompter abstracts the single interactive suspension point of
// the tool. Prompt loops in the service layer ask through a Prompter,
// so tests can script a sequence of answers instead of driving real
// standard input.
package prompter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	apperrors "checksmith/internal/errors"
)

// Prompter solicits one answer from the operator per Ask call. Ask
// blocks until a line of input arrives; end-of-input is reported as an
// error so prompt loops terminate instead of spinning.
type Prompter interface {
	Ask(prompt string) (string, error)
	Say(message string)
}

// LinePrompter reads answers line by line from an input stream and
// writes prompts to an output stream.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a prompter over the given streams.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask prints the prompt and returns the next input line, trimmed.
func (p *LinePrompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInputClosed,
			"Interactive input closed before a value was provided.")
	}
	return strings.TrimSpace(line), nil
}

// Say prints an informational line between prompts.
func (p *LinePrompter) Say(message string) {
	fmt.Fprintln(p.out, message)
}
