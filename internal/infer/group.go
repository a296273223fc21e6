package infer

import (
	"regexp"

	"checksmith/internal/models"
)

// groupPatterns holds one whole-word matcher per vocabulary entry,
// compiled once up front.
var groupPatterns = buildGroupPatterns()

func buildGroupPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(models.Groups()))
	for _, group := range models.Groups() {
		patterns[group] = buildWordPattern(regexp.QuoteMeta(group))
	}
	return patterns
}

func buildWordPattern(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + expr + `)\b`)
}

// Group returns the first vocabulary entry — in enumeration order, not
// description order — that appears as a case-insensitive whole word
// anywhere in the text. The fixed order is a deliberate priority
// tie-break when several group words occur.
func Group(description string) (string, bool) {
	for _, group := range models.Groups() {
		if groupPatterns[group].MatchString(description) {
			return group, true
		}
	}
	return "", false
}
