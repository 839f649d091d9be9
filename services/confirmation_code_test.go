package services

import (
	"context"
	"testing"

	"staydesk/errors"
)

type seqChecker struct {
	taken map[string]bool
	calls int
}

func (c *seqChecker) CodeExists(_ context.Context, code string) (bool, error) {
	c.calls++
	return c.taken[code], nil
}

func TestRandomConfirmationCodeFormat(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := RandomConfirmationCode()
		if err != nil {
			t.Fatalf("random: %v", err)
		}
		if !IsConfirmationCode(code) {
			t.Fatalf("got %q, want SD-XXXXX without ambiguous characters", code)
		}
	}
}

func TestIsConfirmationCode(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"SD-ABCDE", true},
		{"SD-ABCD", false},
		{"SD-ABCDEF", false},
		{"SD-ABC0E", false},
		{"SD-ABCIE", false},
		{"sd-abcde", false},
		{"XX-ABCDE", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsConfirmationCode(tt.in); got != tt.want {
			t.Fatalf("IsConfirmationCode(%q) got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCodeGeneratorRetriesOnCollision(t *testing.T) {
	checker := &seqChecker{taken: map[string]bool{"SD-AAAAA": true, "SD-BBBBB": true}}
	seq := []string{"SD-AAAAA", "SD-BBBBB", "SD-CCCCC"}
	g := NewCodeGenerator(checker)
	g.random = func() (string, error) {
		code := seq[0]
		seq = seq[1:]
		return code, nil
	}

	code, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if code != "SD-CCCCC" || checker.calls != 3 {
		t.Fatalf("got %s after %d checks, want SD-CCCCC after 3", code, checker.calls)
	}
}

func TestCodeGeneratorExhausted(t *testing.T) {
	checker := &seqChecker{taken: map[string]bool{"SD-AAAAA": true}}
	g := NewCodeGenerator(checker)
	g.random = func() (string, error) { return "SD-AAAAA", nil }

	_, err := g.Generate(context.Background())
	if !errors.Is(err, errors.ErrCodeSpaceExhausted) {
		t.Fatalf("got %v, want ErrCodeSpaceExhausted", err)
	}
	if checker.calls != g.attempts {
		t.Fatalf("got %d checks, want %d", checker.calls, g.attempts)
	}
}
