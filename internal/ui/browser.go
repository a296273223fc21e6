// Package ui implements the interactive template browser started when
// checksmith runs without a subcommand: a fuzzy-filterable list of
// registry templates with per-template validation status and a rendered
// detail preview.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/sahilm/fuzzy"

	"checksmith/internal/models"
	"checksmith/internal/validation"
)

// keyMap defines the browser key bindings.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Filter  key.Binding
	Clear   key.Binding
	Preview key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k")),
	Down:    key.NewBinding(key.WithKeys("down", "j")),
	Filter:  key.NewBinding(key.WithKeys("/")),
	Clear:   key.NewBinding(key.WithKeys("esc")),
	Preview: key.NewBinding(key.WithKeys("enter")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

// Browser is the bubbletea model for the template browser.
type Browser struct {
	templates []*models.Template
	results   map[string]validation.Result

	filter    textinput.Model
	filtering bool
	visible   []int
	cursor    int

	preview     string
	showPreview bool

	width  int
	height int
}

// NewBrowser creates a browser over a loaded registry. Validation runs
// once up front so every entry carries its status badge.
func NewBrowser(registry *models.Registry) *Browser {
	filter := textinput.New()
	filter.Placeholder = "filter templates"
	filter.CharLimit = 80
	filter.Width = 40

	results := make(map[string]validation.Result, len(registry.Templates))
	for _, result := range validation.ValidateAll(registry) {
		results[result.TemplateID] = result
	}

	browser := &Browser{
		templates: registry.Templates,
		results:   results,
		filter:    filter,
	}
	browser.applyFilter()
	return browser
}

// Run starts the browser program.
func Run(registry *models.Registry) error {
	program := tea.NewProgram(NewBrowser(registry), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Init implements tea.Model.
func (b *Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil

	case tea.KeyMsg:
		if b.filtering {
			return b.updateFilter(msg)
		}
		return b.updateList(msg)
	}
	return b, nil
}

func (b *Browser) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Clear):
		b.filtering = false
		b.filter.Blur()
		b.filter.SetValue("")
		b.applyFilter()
		return b, nil
	case msg.Type == tea.KeyEnter:
		b.filtering = false
		b.filter.Blur()
		return b, nil
	}

	var cmd tea.Cmd
	b.filter, cmd = b.filter.Update(msg)
	b.applyFilter()
	return b, cmd
}

func (b *Browser) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return b, tea.Quit
	case key.Matches(msg, keys.Up):
		if b.cursor > 0 {
			b.cursor--
		}
		b.showPreview = false
	case key.Matches(msg, keys.Down):
		if b.cursor < len(b.visible)-1 {
			b.cursor++
		}
		b.showPreview = false
	case key.Matches(msg, keys.Filter):
		b.filtering = true
		b.filter.Focus()
		return b, textinput.Blink
	case key.Matches(msg, keys.Clear):
		b.filter.SetValue("")
		b.applyFilter()
		b.showPreview = false
	case key.Matches(msg, keys.Preview):
		b.togglePreview()
	}
	return b, nil
}

// applyFilter recomputes the visible template indices from the filter
// query using fuzzy matching over "id label".
func (b *Browser) applyFilter() {
	query := strings.TrimSpace(b.filter.Value())
	if query == "" {
		b.visible = make([]int, len(b.templates))
		for i := range b.templates {
			b.visible[i] = i
		}
	} else {
		haystack := make([]string, len(b.templates))
		for i, template := range b.templates {
			haystack[i] = template.ID + " " + template.Label
		}
		matches := fuzzy.Find(query, haystack)
		b.visible = make([]int, len(matches))
		for i, match := range matches {
			b.visible[i] = match.Index
		}
	}

	if b.cursor >= len(b.visible) {
		b.cursor = 0
	}
	b.showPreview = false
}

func (b *Browser) togglePreview() {
	if b.showPreview {
		b.showPreview = false
		return
	}
	template := b.selected()
	if template == nil {
		return
	}
	b.preview = b.renderPreview(template)
	b.showPreview = true
}

func (b *Browser) selected() *models.Template {
	if len(b.visible) == 0 || b.cursor >= len(b.visible) {
		return nil
	}
	return b.templates[b.visible[b.cursor]]
}

// renderPreview builds a markdown summary for one template and renders
// it through glamour.
func (b *Browser) renderPreview(template *models.Template) string {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", template.Label)
	if template.Description != "" {
		fmt.Fprintf(&md, "%s\n\n", template.Description)
	}
	fmt.Fprintf(&md, "- **Script type**: %s (`.%s`)\n", template.ScriptType, template.Extension)
	categories := "all groups"
	if len(template.Categories) > 0 {
		categories = strings.Join(template.Categories, ", ")
	}
	fmt.Fprintf(&md, "- **Categories**: %s\n", categories)
	fmt.Fprintf(&md, "- **Placeholders**: %s\n", strings.Join(template.Placeholders, ", "))

	if result, ok := b.results[template.ID]; ok && !result.Valid() {
		md.WriteString("\n**Validation issues**:\n\n")
		for _, defect := range result.Defects {
			fmt.Fprintf(&md, "- %s\n", defect)
		}
	}

	width := b.width - 6
	if width < 20 || width > 100 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md.String()
	}
	rendered, err := renderer.Render(md.String())
	if err != nil {
		return md.String()
	}
	return rendered
}

// View implements tea.Model.
func (b *Browser) View() string {
	var view strings.Builder

	view.WriteString(titleStyle.Render("checksmith templates"))
	view.WriteString("\n")

	if b.filtering || b.filter.Value() != "" {
		view.WriteString(b.filter.View())
		view.WriteString("\n\n")
	}

	if len(b.visible) == 0 {
		view.WriteString(normalStyle.Render("No templates match."))
		view.WriteString("\n")
	}

	for i, index := range b.visible {
		template := b.templates[index]
		badge := okBadgeStyle.Render("OK")
		if result, ok := b.results[template.ID]; ok && !result.Valid() {
			badge = defectBadgeStyle.Render(fmt.Sprintf("%d issue(s)", len(result.Defects)))
		}

		line := fmt.Sprintf("%s  %s  [%s]  %s", template.ID, template.ScriptType, badge, template.Label)
		if i == b.cursor {
			view.WriteString(selectedStyle.Render("> " + line))
		} else {
			view.WriteString(normalStyle.Render("  " + line))
		}
		view.WriteString("\n")
	}

	if b.showPreview && b.preview != "" {
		view.WriteString("\n")
		view.WriteString(previewStyle.Render(strings.TrimRight(b.preview, "\n")))
		view.WriteString("\n")
	}

	view.WriteString(helpStyle.Render("enter: preview  /: filter  esc: clear  q: quit"))
	view.WriteString("\n")
	return view.String()
}
