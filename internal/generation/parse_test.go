package generation

import (
	"errors"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n  ", `{"a":1}`},
		{"no closing fence", "```json\n{\"a\":1}", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.input); got != tt.want {
				t.Errorf("StripFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCoverLetter(t *testing.T) {
	raw := "```json\n{\"strengths\":\"s\",\"growth\":\"g\",\"personality\":\"p\",\"motivation\":\"m\"}\n```"

	letter, err := ParseCoverLetter(raw)
	if err != nil {
		t.Fatalf("ParseCoverLetter failed: %v", err)
	}
	if letter.Strengths != "s" || letter.Growth != "g" || letter.Personality != "p" || letter.Motivation != "m" {
		t.Errorf("letter = %+v", letter)
	}
}

func TestParseCoverLetterMalformed(t *testing.T) {
	_, err := ParseCoverLetter("I am sorry, I cannot help with that.")
	if err == nil {
		t.Fatal("expected an error for non-JSON output")
	}
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}
