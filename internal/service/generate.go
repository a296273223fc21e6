package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "checksmith/internal/errors"
	"checksmith/internal/infer"
	"checksmith/internal/models"
	"checksmith/internal/renderer"
)

// GenerateOptions carries everything the generate workflow needs.
// Explicit field values always take precedence over inference.
type GenerateOptions struct {
	Description  string
	Group        string
	Service      string
	Test         string
	ScriptType   string
	TemplateID   string
	OutputDir    string
	MetadataPath string
	Interactive  bool
	DryRun       bool
	Force        bool
}

// GenerateResult is what the workflow produced. Written is false for
// dry runs; Rendered always holds the finished script text.
type GenerateResult struct {
	Metadata models.Metadata
	Template *models.Template
	Rendered string
	Path     string
	Written  bool
}

// Generate runs the full description-to-check workflow: TDD section
// extraction, group/service/test resolution (inference, explicit
// overrides, or interactive prompting), template selection, the
// compatibility and uniqueness checks, rendering, and the final write.
func (s *Service) Generate(opts GenerateOptions) (*GenerateResult, error) {
	description := strings.TrimSpace(opts.Description)
	if description == "" {
		return nil, apperrors.InvalidInput("--description is required for generate command.")
	}

	sections, err := s.ensureSections(description, opts.Interactive)
	if err != nil {
		return nil, err
	}

	groupValue := opts.Group
	if groupValue == "" {
		groupValue, _ = infer.Group(description)
	}
	group, err := s.ensureGroup(groupValue, opts.Interactive)
	if err != nil {
		return nil, err
	}

	inferredService, inferredTest := infer.ServiceAndTest(description, group)
	service, err := s.ensureValue("service", firstNonEmpty(opts.Service, inferredService), opts.Interactive)
	if err != nil {
		return nil, err
	}
	test, err := s.ensureValue("test", firstNonEmpty(opts.Test, inferredTest), opts.Interactive)
	if err != nil {
		return nil, err
	}

	registry, err := s.storage.LoadRegistry()
	if err != nil {
		return nil, err
	}
	template, err := selectTemplate(s, registry, opts.TemplateID, opts.ScriptType)
	if err != nil {
		return nil, err
	}

	if !template.SupportsGroup(group) {
		return nil, apperrors.InvalidInput(
			"Template '%s' does not support group '%s'. Supported: %s",
			template.ID, group, strings.Join(template.Categories, ", "))
	}

	checkID := fmt.Sprintf("%s_%s_%s", group, service, test)
	filename := fmt.Sprintf("%s-%s-%s.%s", group, service, test, template.Extension)

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = s.storage.ChecksDir()
	}
	outputDir, err = filepath.Abs(outputDir)
	if err != nil {
		return nil, apperrors.StorageError("resolve output directory", err)
	}
	targetPath := filepath.Join(outputDir, filename)

	// The uniqueness check runs even for dry runs: a dry run against an
	// occupied target without --force is still a failure.
	if err := ensureUniquePath(targetPath, opts.Force); err != nil {
		return nil, err
	}

	context := models.GenerationContext{
		Title:       renderer.Title(group, service, test),
		Given:       sections[infer.SectionGiven],
		When:        sections[infer.SectionWhen],
		Then:        sections[infer.SectionThen],
		CheckID:     checkID,
		CommandHint: renderer.CommandHint(template.ScriptType),
	}

	content, err := s.storage.ReadTemplate(template)
	if err != nil {
		return nil, err
	}
	rendered := renderer.Render(content, context)

	result := &GenerateResult{
		Template: template,
		Rendered: rendered,
		Path:     targetPath,
		Metadata: models.Metadata{
			RegistryVersion: registry.Version,
			TemplateID:      template.ID,
			ScriptType:      template.ScriptType,
			Group:           group,
			Service:         service,
			Test:            test,
			CheckID:         checkID,
			File:            displayPath(targetPath),
		},
	}

	if opts.DryRun {
		return result, nil
	}

	executable := template.Extension == "sh"
	if err := s.storage.WriteCheck(targetPath, rendered, executable); err != nil {
		return nil, err
	}
	result.Written = true

	if opts.MetadataPath != "" {
		metadataPath, err := filepath.Abs(opts.MetadataPath)
		if err != nil {
			return nil, apperrors.StorageError("resolve metadata path", err)
		}
		if err := s.storage.WriteMetadata(metadataPath, result.Metadata); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// ensureSections extracts the GIVEN/WHEN/THEN fragments and, in
// interactive mode, solicits any missing one. A blank interactive
// answer is fatal; outside interactive mode any missing section is.
func (s *Service) ensureSections(description string, interactive bool) (map[string]string, error) {
	sections := infer.Sections(description)
	missing := infer.MissingSections(sections)
	if len(missing) == 0 {
		return sections, nil
	}

	if !interactive {
		return nil, apperrors.InvalidInput(
			"Description must include GIVEN, WHEN, and THEN sections. " +
				"Use --interactive to provide them manually if missing.")
	}

	for _, section := range missing {
		label := sectionLabel(section)
		answer, err := s.prompter.Ask(fmt.Sprintf("Provide %s section: ", label))
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return nil, apperrors.InvalidInput("%s section cannot be blank.", label)
		}
		sections[section] = answer
	}
	return sections, nil
}

// ensureGroup validates an explicit or inferred group, or prompts for
// one until a vocabulary member is entered.
func (s *Service) ensureGroup(value string, interactive bool) (string, error) {
	if value != "" {
		normalized := infer.Slugify(value)
		if !models.IsValidGroup(normalized) {
			message := fmt.Sprintf("Unsupported group '%s'. Allowed values: %s",
				value, allowedGroups())
			if suggestion, ok := closestMatch(normalized, models.Groups()); ok {
				message += fmt.Sprintf(" Did you mean '%s'?", suggestion)
			}
			return "", apperrors.NewAppError(apperrors.ErrCodeInvalidInput, message)
		}
		return normalized, nil
	}

	if !interactive {
		return "", apperrors.InvalidInput(
			"Could not infer group from description. Provide --group or use --interactive mode.")
	}

	for {
		entered, err := s.prompter.Ask(fmt.Sprintf("Select group (%s): ", allowedGroups()))
		if err != nil {
			return "", err
		}
		entered = strings.ToLower(strings.TrimSpace(entered))
		if models.IsValidGroup(entered) {
			return entered, nil
		}
		s.prompter.Say("Invalid group. Please choose one of the supported categories.")
	}
}

// ensureValue slugifies an explicit or inferred value, or prompts until
// a non-empty slug is produced.
func (s *Service) ensureValue(field, value string, interactive bool) (string, error) {
	if value != "" {
		return infer.Slugify(value), nil
	}
	if !interactive {
		return "", apperrors.InvalidInput(
			"Could not infer %s from description. Provide --%s or use --interactive mode.",
			field, field)
	}
	for {
		entered, err := s.prompter.Ask(fmt.Sprintf("Enter %s: ", field))
		if err != nil {
			return "", err
		}
		if candidate := infer.Slugify(entered); candidate != "" {
			return candidate, nil
		}
		s.prompter.Say("Value cannot be empty.")
	}
}

func ensureUniquePath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return apperrors.AlreadyExists(
			"Target check '%s' already exists. Use --force to overwrite or choose a different name.",
			path)
	}
	return nil
}

// displayPath shortens an absolute path to be relative to the working
// directory when possible.
func displayPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func sectionLabel(section string) string {
	if section == "" {
		return section
	}
	return strings.ToUpper(section[:1]) + strings.ToLower(section[1:])
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
