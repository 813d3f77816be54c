package generate

import "strings"

// HistoryBanner separates the static instruction from the recent keywords.
const HistoryBanner = "\n\n--------------------\n**Previous Generated Prompts:**\n"

// ComposeInstruction appends the recent keyword window to the static
// instruction. It is pure: equal inputs give byte-identical output.
func ComposeInstruction(template string, window []string) string {
	return template + HistoryBanner + strings.Join(window, "\n")
}
