// Package renderer turns a template's text plus a generation context
// into a finished check script. Substitution is literal: every
// {{NAME}} token is replaced by the context value for NAME, nothing is
// escaped, and tokens without a context value are left verbatim —
// validation is expected to have run beforehand.
package renderer

import (
	"strings"
	"unicode"

	"checksmith/internal/models"
)

// Render substitutes every {{KEY}} occurrence in content with the
// corresponding context value. No recursion: values containing brace
// syntax are inserted as-is.
func Render(content string, ctx models.GenerationContext) string {
	for key, value := range ctx.Map() {
		content = strings.ReplaceAll(content, "{{"+key+"}}", value)
	}
	return content
}

// Title joins the non-empty parts into a human heading, capitalizing
// each one.
func Title(parts ...string) string {
	var clean []string
	for _, part := range parts {
		if part != "" {
			clean = append(clean, capitalize(part))
		}
	}
	return strings.Join(clean, " ")
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// CommandHint returns the placeholder command an operator is expected to
// replace in a generated check, cased per script-type convention.
func CommandHint(scriptType string) string {
	switch models.ScriptType(scriptType) {
	case models.ScriptTypeBash:
		return "replace_with_command"
	case models.ScriptTypePowerShell:
		return "Replace-With-Command"
	default:
		return "REPLACE_WITH_COMMAND"
	}
}
