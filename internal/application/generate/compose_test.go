package generate

import "testing"

func TestComposeInstructionIsDeterministic(t *testing.T) {
	want := "T" + HistoryBanner + "a\nb"

	first := ComposeInstruction("T", []string{"a", "b"})
	second := ComposeInstruction("T", []string{"a", "b"})

	if first != want {
		t.Fatalf("ComposeInstruction() = %q, want %q", first, want)
	}
	if first != second {
		t.Fatalf("outputs differ: %q vs %q", first, second)
	}
}

func TestComposeInstructionBanner(t *testing.T) {
	got := ComposeInstruction("Static", []string{"cat girl"})
	want := "Static\n\n--------------------\n**Previous Generated Prompts:**\ncat girl"
	if got != want {
		t.Fatalf("ComposeInstruction() = %q, want %q", got, want)
	}
}

func TestComposeInstructionEmptyWindow(t *testing.T) {
	if got := ComposeInstruction("T", nil); got != "T"+HistoryBanner {
		t.Fatalf("ComposeInstruction() = %q", got)
	}
}
