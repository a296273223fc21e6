package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	apperrors "checksmith/internal/errors"
	"checksmith/internal/models"
	"checksmith/internal/validation"
)

// showTemplate renders a single template's metadata, validation status
// and content preview as markdown.
func (c *CLI) showTemplate(args []string) (int, error) {
	if len(args) != 1 {
		return 0, apperrors.InvalidInput("Usage: show <template_id>")
	}

	template, err := c.svc.FindTemplate(args[0])
	if err != nil {
		return 0, err
	}

	markdown := templateMarkdown(template, c.svc)
	rendered, err := glamour.Render(markdown, "auto")
	if err != nil {
		// Fall back to the raw markdown when the terminal renderer
		// cannot be set up.
		fmt.Fprintln(c.stdout, markdown)
		return 0, nil
	}
	fmt.Fprint(c.stdout, rendered)
	return 0, nil
}

func templateMarkdown(template *models.Template, svc templateReader) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", template.Label)
	if template.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", template.Description)
	}
	fmt.Fprintf(&b, "- **ID**: `%s`\n", template.ID)
	fmt.Fprintf(&b, "- **Script type**: %s (`.%s`)\n", template.ScriptType, template.Extension)
	fmt.Fprintf(&b, "- **Path**: `%s`\n", template.Path)
	categories := "all groups"
	if len(template.Categories) > 0 {
		categories = strings.Join(template.Categories, ", ")
	}
	fmt.Fprintf(&b, "- **Categories**: %s\n", categories)
	fmt.Fprintf(&b, "- **Placeholders**: %s\n\n", strings.Join(template.Placeholders, ", "))

	result := validation.ValidateTemplate(template)
	if result.Valid() {
		b.WriteString("**Validation**: OK\n")
	} else {
		b.WriteString("**Validation issues**:\n\n")
		for _, defect := range result.Defects {
			fmt.Fprintf(&b, "- %s\n", defect)
		}
	}

	if content, err := svc.ReadTemplate(template); err == nil {
		b.WriteString("\n## Content\n\n")
		fmt.Fprintf(&b, "```\n%s\n```\n", strings.TrimRight(content, "\n"))
	}

	return b.String()
}

// templateReader is the slice of the service the markdown builder needs.
type templateReader interface {
	ReadTemplate(template *models.Template) (string, error)
}
