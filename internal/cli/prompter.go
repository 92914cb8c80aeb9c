package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user questions on a terminal.
type Prompter struct {
	reader *LineReader
	writer io.Writer
	secret func() (string, error) // nil unless input is a terminal
}

// NewPrompter creates a prompter reading from in and writing to out.
// Passwords are read without echo when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	p := &Prompter{
		reader: NewLineReader(in),
		writer: out,
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.secret = func() (string, error) {
			b, err := term.ReadPassword(fd)
			_, _ = fmt.Fprintln(out)
			return string(b), err
		}
	}

	return p
}

// Ask prompts for a line of input, returning def when the user enters nothing.
func (p *Prompter) Ask(ctx context.Context, label, def string) (string, error) {
	prompt := label
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", label, def)
	}
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question. Anything but y or yes counts as no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := p.Ask(ctx, question+" (y/N)", "")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Password prompts for a secret.
func (p *Prompter) Password(ctx context.Context, label string) (string, error) {
	if p.secret == nil {
		return p.Ask(ctx, label, "")
	}

	if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	return p.secret()
}
