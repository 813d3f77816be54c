package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/doeshing/animeprompt/internal/domain"
)

const (
	generatedPromptHeader = "=== GENERATED PROMPT ==="
	negativePromptHeader  = "=== NEGATIVE PROMPT ==="
)

// RenderResponse prints the generated and negative prompts under their section markers.
func RenderResponse(out io.Writer, resp domain.GenerateResponse) {
	fmt.Fprintf(out, "\n%s\n", generatedPromptHeader)
	fmt.Fprintln(out, strings.TrimRight(resp.Prompt, "\n"))
	fmt.Fprintf(out, "\n%s\n", negativePromptHeader)
	fmt.Fprintln(out, resp.NegativePrompt)
}
