// Package validation checks template definitions against their backing
// files. Defects are accumulated and returned as data rather than
// raised as errors, so one validation pass surfaces every problem
// across every template. Only the registry load itself can fail hard; a
// missing or malformed template file is just another defect here.
package validation

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"checksmith/internal/models"
)

// Result holds the accumulated defects for one template. A template
// with zero defects is valid.
type Result struct {
	TemplateID string
	Defects    []string
}

// Valid reports whether the template passed every check.
func (r Result) Valid() bool {
	return len(r.Defects) == 0
}

// ValidateAll runs the validator over every registry entry in order.
func ValidateAll(registry *models.Registry) []Result {
	results := make([]Result, 0, len(registry.Templates))
	for _, template := range registry.Templates {
		results = append(results, ValidateTemplate(template))
	}
	return results
}

// ValidateTemplate runs every structural check against a single
// template. The checks are independent; nothing short-circuits except
// that a missing backing file makes the content checks vacuous.
func ValidateTemplate(template *models.Template) Result {
	var defects []string

	expected, known := models.ScriptType(template.ScriptType).Extension()
	if !known {
		defects = append(defects, fmt.Sprintf(
			"Template %s specifies unsupported script_type '%s'",
			template.ID, template.ScriptType))
	} else if expected != template.Extension {
		defects = append(defects, fmt.Sprintf(
			"Template %s extension mismatch: expected '%s', found '%s'",
			template.ID, expected, template.Extension))
	}

	content, err := os.ReadFile(template.Path)
	if err != nil {
		defects = append(defects, fmt.Sprintf("Template file missing: %s", template.Path))
	} else {
		defects = append(defects, contentDefects(template, string(content))...)
	}

	if unknown := unknownCategories(template); len(unknown) > 0 {
		defects = append(defects, fmt.Sprintf(
			"Template %s lists unsupported categories: %s",
			template.ID, strings.Join(unknown, ", ")))
	}

	return Result{TemplateID: template.ID, Defects: defects}
}

func contentDefects(template *models.Template, content string) []string {
	var defects []string

	declared := make(map[string]bool, len(template.Placeholders))
	for _, name := range template.Placeholders {
		declared[name] = true
	}

	var missing []string
	for _, name := range models.RequiredPlaceholders() {
		if !declared[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		defects = append(defects, fmt.Sprintf(
			"Template %s registry placeholders missing required entries: %s",
			template.ID, strings.Join(missing, ", ")))
	}

	for _, name := range models.RequiredPlaceholders() {
		if !declared[name] {
			continue
		}
		if !strings.Contains(content, "{{"+name+"}}") {
			defects = append(defects, fmt.Sprintf(
				"Template %s missing placeholder '{{%s}}' in file", template.ID, name))
		}
	}

	// The narrative words must appear in the file text independently of
	// any placeholder tokens.
	if !strings.Contains(content, "GIVEN") ||
		!strings.Contains(content, "WHEN") ||
		!strings.Contains(content, "THEN") {
		defects = append(defects, fmt.Sprintf(
			"Template %s does not include GIVEN/WHEN/THEN guidance", template.ID))
	}

	return defects
}

func unknownCategories(template *models.Template) []string {
	var unknown []string
	for _, category := range template.Categories {
		if !models.IsValidGroup(category) {
			unknown = append(unknown, category)
		}
	}
	return unknown
}
