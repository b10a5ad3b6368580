package services

import (
	"strings"
	"testing"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"empty", "", 100, ""},
		{"plain", "hello world", 100, "hello world"},
		{"null bytes", "hel\x00lo", 100, "hello"},
		{"collapse whitespace", "  hello\n\n  world\t ", 100, "hello world"},
		{"truncate", "abcdefghij", 5, "abcde"},
		{"script tag", "before <script>alert(1)</script> after", 100, "before after"},
		{"script tag case", "x <SCRIPT src=a>y</SCRIPT> z", 100, "x z"},
		{"iframe tag", "a <iframe src=b>c</iframe> d", 100, "a d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.input, tt.max); got != tt.want {
				t.Errorf("SanitizeText(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestSanitizeNote(t *testing.T) {
	if got := SanitizeNote(nil); got != nil {
		t.Errorf("SanitizeNote(nil) = %v, want nil", got)
	}

	empty := "   "
	if got := SanitizeNote(&empty); got != nil {
		t.Errorf("SanitizeNote(whitespace) = %v, want nil", got)
	}

	note := "feeling better today"
	got := SanitizeNote(&note)
	if got == nil || *got != note {
		t.Errorf("SanitizeNote(%q) = %v, want unchanged", note, got)
	}

	long := strings.Repeat("a", 600)
	got = SanitizeNote(&long)
	if got == nil || len(*got) != 500 {
		t.Errorf("long note not truncated to 500 characters")
	}
}

func TestValidMoodScore(t *testing.T) {
	for _, score := range []int{1, 5, 10} {
		if !ValidMoodScore(score) {
			t.Errorf("ValidMoodScore(%d) = false, want true", score)
		}
	}
	for _, score := range []int{0, -3, 11, 100} {
		if ValidMoodScore(score) {
			t.Errorf("ValidMoodScore(%d) = true, want false", score)
		}
	}
}
