package infer

import (
	"regexp"
	"strings"
)

// The service/test heuristics only ever look at the summary clause: the
// portion of the description before the TDD sections begin. Each
// heuristic is a standalone function; ServiceAndTest folds over them in
// a fixed order, stopping at the first success per field.

var (
	// "for redis authentication check" — the words between "for" and a
	// trailing object noun carry the service (first word) and the test
	// name (remaining words).
	explicitObjectPattern = regexp.MustCompile(
		`(?i)\bfor\s+([a-z0-9][a-z0-9-_/ ]+?)\s+(?:check|test|validation|integration|script)\b`)

	// Bare "for redis" fallback when no trailing noun is present.
	bareForPattern = regexp.MustCompile(`(?i)\bfor\s+([a-z0-9][a-z0-9-_/]+)`)

	// "ensure auth is enforced" — a test name guided by a leading verb.
	verbGuidedPattern = regexp.MustCompile(
		`(?i)\b(?:ensure|verify|validate|confirm|check)\s+([a-z0-9][a-z0-9-_/ ]+)`)
)

// ServiceAndTest extracts the service and test name from the summary
// clause of a description. group is the already-resolved behavioral
// group, or empty when unresolved; it gates the group-prefixed
// heuristic. Either return value may be empty, signaling the caller to
// fall back to an explicit flag or an interactive prompt.
func ServiceAndTest(description, group string) (string, string) {
	summary := summaryClause(description)

	var service, test string

	if s, t, ok := explicitObject(summary); ok {
		service, test = s, t
	}
	if service == "" && group != "" {
		if s, t, ok := groupPrefixed(summary, group); ok {
			service, test = s, t
		}
	}
	if service == "" {
		if s, ok := bareFor(summary); ok {
			service = s
		}
	}
	if test == "" {
		if t, ok := verbGuided(summary); ok {
			test = t
		}
	}
	if service != "" && test == "" {
		if t, ok := adjacentWord(summary, service); ok {
			test = t
		}
	}

	return service, test
}

// summaryClause truncates the description at the first TDD keyword. The
// original convention only recognizes the "Given" and "GIVEN" spellings
// as section openers here, so those are the only cut points.
func summaryClause(description string) string {
	summary, _, _ := strings.Cut(description, "Given")
	summary, _, _ = strings.Cut(summary, "GIVEN")
	return summary
}

func explicitObject(summary string) (string, string, bool) {
	match := explicitObjectPattern.FindStringSubmatch(summary)
	if match == nil {
		return "", "", false
	}
	words := strings.Fields(strings.TrimSpace(match[1]))
	if len(words) == 0 {
		return "", "", false
	}
	service := Slugify(words[0])
	test := ""
	if len(words) > 1 {
		test = Slugify(strings.Join(words[1:], " "))
	}
	return service, test, true
}

func groupPrefixed(summary, group string) (string, string, bool) {
	pattern := regexp.MustCompile(
		`(?i)\b` + regexp.QuoteMeta(group) + `\s+([a-z0-9][a-z0-9-_/]+)(?:\s+([a-z0-9][a-z0-9-_/]+))?`)
	match := pattern.FindStringSubmatch(summary)
	if match == nil {
		return "", "", false
	}
	return Slugify(match[1]), Slugify(match[2]), true
}

func bareFor(summary string) (string, bool) {
	match := bareForPattern.FindStringSubmatch(summary)
	if match == nil {
		return "", false
	}
	return Slugify(match[1]), true
}

func verbGuided(summary string) (string, bool) {
	match := verbGuidedPattern.FindStringSubmatch(summary)
	if match == nil {
		return "", false
	}
	return Slugify(match[1]), true
}

// adjacentWord takes the word immediately following the resolved service
// token, provided it differs from the service itself.
func adjacentWord(summary, service string) (string, bool) {
	pattern := regexp.MustCompile(
		`(?i)\b` + regexp.QuoteMeta(service) + `\b\s+([a-z0-9][a-z0-9-_/]+)`)
	match := pattern.FindStringSubmatch(summary)
	if match == nil {
		return "", false
	}
	candidate := Slugify(match[1])
	if candidate == "" || candidate == service {
		return "", false
	}
	return candidate, true
}
