// Package cli provides the headless command-line surface: subcommand
// dispatch, per-subcommand flag parsing, and output formatting for
// human and JSON consumers. All business logic lives in the service
// layer; this package only translates between the terminal and it.
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/sahilm/fuzzy"

	"checksmith/internal/clipboard"
	apperrors "checksmith/internal/errors"
	"checksmith/internal/models"
	"checksmith/internal/service"
)

// CLI executes subcommands against a service instance. Output streams
// are injected so tests can capture them.
type CLI struct {
	svc    *service.Service
	stdout io.Writer
	stderr io.Writer
}

// New creates a CLI instance.
func New(svc *service.Service, stdout, stderr io.Writer) *CLI {
	return &CLI{svc: svc, stdout: stdout, stderr: stderr}
}

var commandNames = []string{"list", "validate", "update", "generate", "show", "help"}

// Execute dispatches a subcommand and returns the process exit code.
// A non-nil error is a handled domain or usage error; the caller prints
// it with an ERROR prefix and exits nonzero.
func (c *CLI) Execute(args []string) (int, error) {
	if len(args) == 0 {
		c.printUsage()
		return 0, nil
	}

	command := args[0]
	rest := args[1:]

	switch command {
	case "list", "ls":
		return c.listTemplates()
	case "validate":
		return c.validateTemplates()
	case "update":
		return c.updateTemplate(rest)
	case "generate":
		return c.generate(rest)
	case "show":
		return c.showTemplate(rest)
	case "help", "--help", "-h":
		c.printUsage()
		return 0, nil
	default:
		message := fmt.Sprintf("Unknown command '%s'.", command)
		if matches := fuzzy.Find(command, commandNames); len(matches) > 0 {
			message += fmt.Sprintf(" Did you mean '%s'?", commandNames[matches[0].Index])
		}
		return 0, apperrors.InvalidInput("%s", message)
	}
}

// listTemplates prints every registry entry with its resolved metadata.
func (c *CLI) listTemplates() (int, error) {
	registry, err := c.svc.LoadRegistry()
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(c.stdout, "Template registry version: %d\n", registry.Version)
	for _, template := range registry.Templates {
		categories := "(all)"
		if len(template.Categories) > 0 {
			categories = strings.Join(template.Categories, ", ")
		}
		fmt.Fprintf(c.stdout, "\nID: %s\n", template.ID)
		fmt.Fprintf(c.stdout, "  Label      : %s\n", template.Label)
		if template.Description != "" {
			fmt.Fprintf(c.stdout, "  Description: %s\n", template.Description)
		}
		fmt.Fprintf(c.stdout, "  Script Type: %s (.%s)\n", template.ScriptType, template.Extension)
		fmt.Fprintf(c.stdout, "  Path       : %s\n", template.Path)
		fmt.Fprintf(c.stdout, "  Categories : %s\n", categories)
		fmt.Fprintf(c.stdout, "  Placeholders: %s\n", strings.Join(template.Placeholders, ", "))
	}
	return 0, nil
}

// validateTemplates reports per-template defects. The exit code is 1
// when any template has defects, without an extra error line — the
// itemized report is the output.
func (c *CLI) validateTemplates() (int, error) {
	results, err := c.svc.ValidateTemplates()
	if err != nil {
		return 0, err
	}

	hadIssue := false
	for _, result := range results {
		if result.Valid() {
			fmt.Fprintf(c.stdout, "Template %s: OK\n", result.TemplateID)
			continue
		}
		hadIssue = true
		fmt.Fprintf(c.stdout, "Template %s issues:\n", result.TemplateID)
		for _, defect := range result.Defects {
			fmt.Fprintf(c.stdout, "  - %s\n", defect)
		}
	}

	if hadIssue {
		return 1, nil
	}
	fmt.Fprintln(c.stdout, "All templates validated successfully.")
	return 0, nil
}

func (c *CLI) updateTemplate(args []string) (int, error) {
	if len(args) != 2 {
		return 0, apperrors.InvalidInput("Usage: update <template_id> <source_path>")
	}
	template, err := c.svc.UpdateTemplate(args[0], args[1])
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(c.stdout, "Updated template %s from %s.\n", template.ID, args[1])
	return 0, nil
}

func (c *CLI) generate(args []string) (int, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts service.GenerateOptions
	var emitJSON, copyToClipboard bool
	fs.StringVar(&opts.Description, "description", "", "Natural language description containing GIVEN/WHEN/THEN")
	fs.StringVar(&opts.Description, "d", "", "Shorthand for --description")
	fs.StringVar(&opts.Group, "group", "", "Override inferred group")
	fs.StringVar(&opts.Service, "service", "", "Override inferred service name")
	fs.StringVar(&opts.Test, "test", "", "Override inferred test name")
	fs.StringVar(&opts.ScriptType, "script-type", "", "Preferred script type when template id is not specified")
	fs.StringVar(&opts.TemplateID, "template-id", "", "Explicit template identifier to use")
	fs.StringVar(&opts.OutputDir, "output-dir", "", "Directory where the check should be created")
	fs.StringVar(&opts.MetadataPath, "metadata", "", "Optional path to store metadata JSON")
	fs.BoolVar(&opts.Interactive, "interactive", false, "Prompt for missing details")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Print generated script without writing")
	fs.BoolVar(&opts.Force, "force", false, "Overwrite existing check if present")
	fs.BoolVar(&emitJSON, "json", false, "Emit metadata as JSON to stdout")
	fs.BoolVar(&copyToClipboard, "copy", false, "Copy the rendered script to the clipboard")
	if err := fs.Parse(args); err != nil {
		return 0, apperrors.InvalidInput("%v", err)
	}

	if opts.ScriptType != "" && !isValidScriptType(opts.ScriptType) {
		return 0, apperrors.InvalidInput(
			"Unsupported script type '%s'. Allowed values: %s",
			opts.ScriptType, strings.Join(models.ScriptTypes(), ", "))
	}

	result, err := c.svc.Generate(opts)
	if err != nil {
		return 0, err
	}

	if copyToClipboard {
		if err := clipboard.Copy(result.Rendered); err != nil {
			fmt.Fprintf(c.stderr, "Warning: failed to copy to clipboard: %v\n", err)
		}
	}

	if opts.DryRun {
		fmt.Fprintln(c.stdout, result.Rendered)
		return 0, nil
	}

	if emitJSON {
		encoded, err := json.MarshalIndent(result.Metadata, "", "  ")
		if err != nil {
			return 0, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to encode metadata")
		}
		fmt.Fprintf(c.stdout, "%s\n", encoded)
		return 0, nil
	}

	fmt.Fprintf(c.stdout, "Generated check: %s\n", result.Metadata.File)
	fmt.Fprintf(c.stdout, "  Template : %s\n", result.Metadata.TemplateID)
	fmt.Fprintf(c.stdout, "  Group    : %s\n", result.Metadata.Group)
	fmt.Fprintf(c.stdout, "  Service  : %s\n", result.Metadata.Service)
	fmt.Fprintf(c.stdout, "  Test     : %s\n", result.Metadata.Test)
	fmt.Fprintln(c.stdout, "  Reminder : Update the placeholder logic before running the orchestrator.")
	return 0, nil
}

func isValidScriptType(scriptType string) bool {
	for _, known := range models.ScriptTypes() {
		if known == scriptType {
			return true
		}
	}
	return false
}

func (c *CLI) printUsage() {
	fmt.Fprint(c.stdout, `checksmith - check template registry and generator

USAGE:
    checksmith <command> [options]

COMMANDS:
    (no command)    Start the interactive template browser
    list, ls        List available templates
    validate        Validate template integrity
    show <id>       Show one template in detail
    update <template_id> <source_path>
                    Update template content from a source file
    generate        Generate a new check from a description
    help            Show this help

GENERATE OPTIONS:
    --description, -d   Natural language description containing GIVEN/WHEN/THEN
    --group             Override inferred group
    --service           Override inferred service name
    --test              Override inferred test name
    --script-type       Preferred script type (bash, cmd, powershell)
    --template-id       Explicit template identifier to use
    --output-dir        Directory where the check should be created
    --interactive       Prompt for missing details
    --dry-run           Print generated script without writing
    --force             Overwrite existing check if present
    --json              Emit metadata as JSON to stdout
    --metadata <path>   Also persist metadata JSON to this path
    --copy              Copy the rendered script to the clipboard

STORAGE:
    Root directory: current directory, or CHECKSMITH_DIR when set
    Layout:         templates/registry.json, templates/*, checks/
    Override via checksmith.yaml in the root directory
`)
}
