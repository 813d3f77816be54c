package filesystem

import (
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/artist")

	tests := []struct {
		in   string
		want string
	}{
		{in: "/tmp/key", want: "/tmp/key"},
		{in: "~/.animeprompt/history", want: filepath.Join("/home/artist", ".animeprompt/history")},
		{in: "state/./key", want: filepath.Join("state", "key")},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
