// Package clipboard implements ports.Clipboard on top of the system clipboard.
package clipboard

import (
	"fmt"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/doeshing/animeprompt/internal/ports"
)

// Clipboard copies generated prompts to the system clipboard.
type Clipboard struct {
	write func(string) error
}

// New builds the clipboard helper.
func New() *Clipboard {
	return &Clipboard{write: clipboard.WriteAll}
}

// Enabled reports whether a clipboard utility is available on this machine.
func (c *Clipboard) Enabled() bool {
	return !clipboard.Unsupported
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	if !c.Enabled() {
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	if err := c.write(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

var _ ports.Clipboard = (*Clipboard)(nil)
