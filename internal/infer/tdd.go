package infer

import "strings"

// SectionGiven, SectionWhen and SectionThen are the canonical section
// keys returned by Sections.
const (
	SectionGiven = "GIVEN"
	SectionWhen  = "WHEN"
	SectionThen  = "THEN"
)

// SectionNames returns the three TDD section keys in narrative order.
func SectionNames() []string {
	return []string{SectionGiven, SectionWhen, SectionThen}
}

var sectionKeyword = buildWordPattern("GIVEN|WHEN|THEN")

// fragment trimming strips whitespace plus this punctuation set around
// each section body.
const fragmentCutset = " :.-"

// Sections splits a description into its GIVEN/WHEN/THEN fragments.
// Keywords match case-insensitively as whole words; the fragment is the
// text between one keyword and the next (or the end of the string),
// trimmed of whitespace and surrounding punctuation. When a keyword
// occurs more than once the last non-empty fragment wins. A description
// without any keyword yields an empty map; deciding whether that is
// fatal is the caller's business.
func Sections(description string) map[string]string {
	matches := sectionKeyword.FindAllStringIndex(description, -1)
	sections := make(map[string]string)

	for i, match := range matches {
		key := strings.ToUpper(description[match[0]:match[1]])
		end := len(description)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		value := strings.Trim(strings.TrimSpace(description[match[1]:end]), fragmentCutset)
		if value != "" {
			sections[key] = value
		}
	}

	return sections
}

// MissingSections returns the section names absent from sections, in
// narrative order.
func MissingSections(sections map[string]string) []string {
	var missing []string
	for _, name := range SectionNames() {
		if _, ok := sections[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
