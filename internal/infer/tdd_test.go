package infer

import "testing"

func TestSections(t *testing.T) {
	description := "Check redis auth. GIVEN redis is running WHEN auth is attempted THEN it must require a password"
	sections := Sections(description)

	if got := sections[SectionGiven]; got != "redis is running" {
		t.Errorf("GIVEN = %q, want %q", got, "redis is running")
	}
	if got := sections[SectionWhen]; got != "auth is attempted" {
		t.Errorf("WHEN = %q, want %q", got, "auth is attempted")
	}
	if got := sections[SectionThen]; got != "it must require a password" {
		t.Errorf("THEN = %q, want %q", got, "it must require a password")
	}
}

func TestSectionsLastOccurrenceWins(t *testing.T) {
	sections := Sections("GIVEN a WHEN b GIVEN c THEN d")
	if got := sections[SectionGiven]; got != "c" {
		t.Errorf("GIVEN = %q, want the last occurrence %q", got, "c")
	}
	if got := sections[SectionWhen]; got != "b" {
		t.Errorf("WHEN = %q, want %q", got, "b")
	}
	if got := sections[SectionThen]; got != "d" {
		t.Errorf("THEN = %q, want %q", got, "d")
	}
}

func TestSectionsEmptyFragmentDoesNotErase(t *testing.T) {
	// A trailing keyword with nothing after it must not wipe out an
	// earlier fragment.
	sections := Sections("GIVEN a THEN d GIVEN")
	if got := sections[SectionGiven]; got != "a" {
		t.Errorf("GIVEN = %q, want %q", got, "a")
	}
	if got := sections[SectionThen]; got != "d" {
		t.Errorf("THEN = %q, want %q", got, "d")
	}
}

func TestSectionsCaseInsensitiveKeys(t *testing.T) {
	sections := Sections("given x when y then z")
	for _, key := range SectionNames() {
		if _, ok := sections[key]; !ok {
			t.Errorf("expected canonical key %s, got %v", key, sections)
		}
	}
}

func TestSectionsTrimsPunctuation(t *testing.T) {
	sections := Sections("GIVEN: - the server runs. WHEN - a probe fires. THEN: it responds.")
	if got := sections[SectionGiven]; got != "the server runs" {
		t.Errorf("GIVEN = %q, want %q", got, "the server runs")
	}
	if got := sections[SectionWhen]; got != "a probe fires" {
		t.Errorf("WHEN = %q, want %q", got, "a probe fires")
	}
	if got := sections[SectionThen]; got != "it responds" {
		t.Errorf("THEN = %q, want %q", got, "it responds")
	}
}

func TestSectionsNoKeywords(t *testing.T) {
	sections := Sections("no structure at all")
	if len(sections) != 0 {
		t.Errorf("expected empty map, got %v", sections)
	}
}

func TestSectionsWholeWordsOnly(t *testing.T) {
	sections := Sections("GIVENS a WHEN b THEN c")
	if _, ok := sections[SectionGiven]; ok {
		t.Errorf("GIVENS must not match the GIVEN keyword: %v", sections)
	}
}

func TestMissingSections(t *testing.T) {
	sections := Sections("GIVEN a")
	missing := MissingSections(sections)
	if len(missing) != 2 || missing[0] != SectionWhen || missing[1] != SectionThen {
		t.Errorf("MissingSections = %v, want [WHEN THEN]", missing)
	}

	if missing := MissingSections(Sections("GIVEN a WHEN b THEN c")); len(missing) != 0 {
		t.Errorf("expected no missing sections, got %v", missing)
	}
}
