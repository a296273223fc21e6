package prompter

import (
	"bytes"
	"strings"
	"testing"

	apperrors "checksmith/internal/errors"
)

func TestLinePrompterAsk(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("  security  \nredis\n"), &out)

	answer, err := p.Ask("Select group: ")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer != "security" {
		t.Errorf("answer = %q, want trimmed %q", answer, "security")
	}
	if !strings.Contains(out.String(), "Select group: ") {
		t.Errorf("prompt not written to output: %q", out.String())
	}

	answer, err = p.Ask("Enter service: ")
	if err != nil {
		t.Fatal(err)
	}
	if answer != "redis" {
		t.Errorf("answer = %q, want %q", answer, "redis")
	}
}

func TestLinePrompterLastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("monitoring"), &out)

	answer, err := p.Ask("? ")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer != "monitoring" {
		t.Errorf("answer = %q", answer)
	}
}

func TestLinePrompterEndOfInput(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader(""), &out)

	_, err := p.Ask("? ")
	if err == nil {
		t.Fatal("expected error at end of input")
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeInputClosed) {
		t.Errorf("expected input-closed code, got %v", err)
	}
}

func TestLinePrompterSay(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader(""), &out)
	p.Say("Invalid group.")
	if out.String() != "Invalid group.\n" {
		t.Errorf("Say output = %q", out.String())
	}
}
