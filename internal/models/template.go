package models

// ScriptType identifies the scripting language a check template targets.
type ScriptType string

const (
	ScriptTypeBash       ScriptType = "bash"
	ScriptTypePowerShell ScriptType = "powershell"
	ScriptTypeCmd        ScriptType = "cmd"
)

// scriptTypeExtensions maps every known script type to its canonical
// file extension. A template whose declared extension disagrees with
// this mapping is a validation defect, not a load failure.
var scriptTypeExtensions = map[ScriptType]string{
	ScriptTypeBash:       "sh",
	ScriptTypePowerShell: "ps1",
	ScriptTypeCmd:        "cmd",
}

// Extension returns the canonical file extension for the script type,
// and whether the type is part of the known enumeration.
func (s ScriptType) Extension() (string, bool) {
	ext, ok := scriptTypeExtensions[s]
	return ext, ok
}

// ScriptTypes returns the supported script types in a stable order.
func ScriptTypes() []string {
	return []string{"bash", "cmd", "powershell"}
}

// Groups returns the closed vocabulary of behavioral groups. The slice
// order is the inference priority: when a description mentions several
// group words, the earliest entry here wins.
func Groups() []string {
	return []string{
		"security",
		"storage",
		"communication",
		"environment",
		"monitoring",
		"performance",
		"wsl2",
	}
}

// IsValidGroup reports whether name is a member of the group vocabulary.
func IsValidGroup(name string) bool {
	for _, group := range Groups() {
		if group == name {
			return true
		}
	}
	return false
}

// RequiredPlaceholders lists the placeholder names every template must
// declare and carry as literal {{NAME}} tokens in its backing file.
func RequiredPlaceholders() []string {
	return []string{"TITLE", "GIVEN", "WHEN", "THEN", "CHECK_ID", "COMMAND_HINT"}
}

// Template describes one reusable check-script skeleton from the registry.
type Template struct {
	ID           string
	Label        string
	Description  string
	ScriptType   string
	Extension    string
	Path         string // absolute path to the backing file
	Categories   []string
	Placeholders []string
}

// SupportsGroup reports whether the template accepts checks of the given
// group. An empty category set means the template applies to all groups.
func (t *Template) SupportsGroup(group string) bool {
	if len(t.Categories) == 0 {
		return true
	}
	for _, category := range t.Categories {
		if category == group {
			return true
		}
	}
	return false
}

// Registry is the versioned collection of templates loaded from the
// registry file. It is read-only for the lifetime of an invocation.
type Registry struct {
	Version   int
	Templates []*Template
}

// FindByID returns the template with the exact identifier, if any.
func (r *Registry) FindByID(id string) (*Template, bool) {
	for _, template := range r.Templates {
		if template.ID == id {
			return template, true
		}
	}
	return nil, false
}

// FirstByScriptType returns the first registered template of the given
// script type, if any.
func (r *Registry) FirstByScriptType(scriptType string) (*Template, bool) {
	for _, template := range r.Templates {
		if template.ScriptType == scriptType {
			return template, true
		}
	}
	return nil, false
}

// IDs returns every template identifier in registry order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.Templates))
	for _, template := range r.Templates {
		ids = append(ids, template.ID)
	}
	return ids
}
