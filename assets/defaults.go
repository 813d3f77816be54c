package assets

import (
	_ "embed"
	"strings"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

//go:embed defaults/system_instruction.md
var systemInstruction string

//go:embed defaults/negative_prompt.txt
var negativePrompt string

// SystemInstruction is the static instruction that steers the model toward
// anime-style image prompts.
func SystemInstruction() string {
	return systemInstruction
}

// NegativePrompt is printed after every generated prompt.
func NegativePrompt() string {
	return strings.TrimSpace(negativePrompt)
}
