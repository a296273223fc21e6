package renderer

import (
	"testing"

	"checksmith/internal/models"
)

func TestRenderSubstitutesEveryPlaceholder(t *testing.T) {
	content := "{{TITLE}} {{GIVEN}} {{WHEN}} {{THEN}} {{CHECK_ID}} {{COMMAND_HINT}}"
	ctx := models.GenerationContext{
		Title:       "T",
		Given:       "g",
		When:        "w",
		Then:        "t",
		CheckID:     "cid",
		CommandHint: "cmd",
	}

	got := Render(content, ctx)
	want := "T g w t cid cmd"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderLeavesUnknownPlaceholdersVerbatim(t *testing.T) {
	got := Render("{{TITLE}} {{CUSTOM}}", models.GenerationContext{Title: "T"})
	if got != "T {{CUSTOM}}" {
		t.Errorf("Render = %q, want %q", got, "T {{CUSTOM}}")
	}
}

func TestRenderReplacesRepeatedOccurrences(t *testing.T) {
	got := Render("{{CHECK_ID}}-{{CHECK_ID}}", models.GenerationContext{CheckID: "x"})
	if got != "x-x" {
		t.Errorf("Render = %q, want %q", got, "x-x")
	}
}

func TestRenderNoRecursiveSubstitution(t *testing.T) {
	// A value containing placeholder syntax is inserted literally.
	got := Render("{{TITLE}}", models.GenerationContext{Title: "{{GIVEN}}"})
	if got != "{{GIVEN}}" {
		t.Errorf("Render = %q, want the literal value back", got)
	}
}

func TestTitle(t *testing.T) {
	cases := []struct {
		parts []string
		want  string
	}{
		{[]string{"security", "redis", "authentication"}, "Security Redis Authentication"},
		{[]string{"security", "", "auth"}, "Security Auth"},
		{[]string{"WSL2"}, "Wsl2"},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := Title(tc.parts...); got != tc.want {
			t.Errorf("Title(%v) = %q, want %q", tc.parts, got, tc.want)
		}
	}
}

func TestCommandHint(t *testing.T) {
	cases := []struct {
		scriptType string
		want       string
	}{
		{"bash", "replace_with_command"},
		{"powershell", "Replace-With-Command"},
		{"cmd", "REPLACE_WITH_COMMAND"},
		{"unknown", "REPLACE_WITH_COMMAND"},
	}
	for _, tc := range cases {
		if got := CommandHint(tc.scriptType); got != tc.want {
			t.Errorf("CommandHint(%q) = %q, want %q", tc.scriptType, got, tc.want)
		}
	}
}
