package models

// GenerationContext carries the six substitution values rendered into a
// template. Values are plain strings; no placeholder syntax of their own
// is interpreted.
type GenerationContext struct {
	Title       string
	Given       string
	When        string
	Then        string
	CheckID     string
	CommandHint string
}

// Map returns the context keyed by placeholder name.
func (c GenerationContext) Map() map[string]string {
	return map[string]string{
		"TITLE":        c.Title,
		"GIVEN":        c.Given,
		"WHEN":         c.When,
		"THEN":         c.Then,
		"CHECK_ID":     c.CheckID,
		"COMMAND_HINT": c.CommandHint,
	}
}

// Metadata describes a generated check for machine consumption. It is
// emitted on stdout with --json and persisted with --metadata.
type Metadata struct {
	RegistryVersion int    `json:"registry_version"`
	TemplateID      string `json:"template_id"`
	ScriptType      string `json:"script_type"`
	Group           string `json:"group"`
	Service         string `json:"service"`
	Test            string `json:"test"`
	CheckID         string `json:"check_id"`
	File            string `json:"file"`
}
