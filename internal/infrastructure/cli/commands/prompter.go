package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// Prompter asks yes/no questions on the given streams.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter over in and out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm prints question and reports whether the answer was y or yes.
// End of input counts as no.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}

// confirmDestructive skips the question when --yes was given.
func confirmDestructive(cmd *cobra.Command, assumeYes bool, question string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	return NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()).Confirm(question)
}
