package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/investigator-go/internal/application/gate"
	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/ports"
)

// Prompter implements ConfirmationPrompter using stdin/stdout.
// Replies are read with the same yes/no vocabulary as the chat.
type Prompter struct {
	Lang domain.Language

	rawIn io.Reader
	in    *bufio.Reader
	out   io.Writer
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		Lang:  domain.DefaultLanguage,
		rawIn: in,
		in:    bufio.NewReader(in),
		out:   out,
	}
}

// Enabled reports whether a human can answer. Files must be terminals;
// any other reader is assumed to be scripted input.
func (p *Prompter) Enabled() bool {
	if f, ok := p.rawIn.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return true
}

// Confirm asks question until the reply is a clear yes or no.
func (p *Prompter) Confirm(question string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s\n%s", question, promptPrefix)
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return false, err
		}
		switch gate.Classify(p.Lang, line) {
		case gate.DecisionApprove:
			return true, nil
		case gate.DecisionReject:
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}

// isTerminal reports whether w writes to an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
