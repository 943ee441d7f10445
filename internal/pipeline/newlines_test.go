package pipeline

import "testing"

func TestFixNewlines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no breaks", "plain", "plain"},
		{"line feed", "a\nb", "a<br>b"},
		{"vertical tab", "a\u000bb", "a<br>b"},
		{"crlf is two breaks", "a\r\nb", "a<br><br>b"},
		{"indentation kept", "a\n   b", "a<br>&nbsp;&nbsp;&nbsp;b"},
		{"tab counts once", "a\n\tb", "a<br>&nbsp;b"},
		{"existing br", "a<br>  b", "a<br>&nbsp;&nbsp;b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FixNewlines(tt.in); got != tt.want {
				t.Errorf("FixNewlines(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
