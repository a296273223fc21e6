// Package service provides the business logic behind every checksmith
// subcommand: listing and validating the registry, updating template
// content, and the end-to-end "describe → generate check file"
// workflow.
package service

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"checksmith/internal/config"
	apperrors "checksmith/internal/errors"
	"checksmith/internal/models"
	"checksmith/internal/prompter"
	"checksmith/internal/storage"
	"checksmith/internal/validation"
)

// Service wires the storage layer, configuration and the interactive
// prompter together. The registry is loaded per operation; nothing is
// cached across invocations.
type Service struct {
	cfg      *config.Config
	storage  *storage.Storage
	prompter prompter.Prompter
}

// New creates a service instance.
func New(cfg *config.Config, store *storage.Storage, prompt prompter.Prompter) *Service {
	return &Service{cfg: cfg, storage: store, prompter: prompt}
}

// LoadRegistry exposes the registry for read-only consumers (list, the
// template browser).
func (s *Service) LoadRegistry() (*models.Registry, error) {
	return s.storage.LoadRegistry()
}

// ValidateTemplates runs the validator over every registry entry and
// returns the per-template results in registry order.
func (s *Service) ValidateTemplates() ([]validation.Result, error) {
	registry, err := s.storage.LoadRegistry()
	if err != nil {
		return nil, err
	}
	return validation.ValidateAll(registry), nil
}

// FindTemplate returns the registry entry with the given identifier.
// Unknown ids get a fuzzy "did you mean" suggestion when one is close.
func (s *Service) FindTemplate(id string) (*models.Template, error) {
	registry, err := s.storage.LoadRegistry()
	if err != nil {
		return nil, err
	}
	template, ok := registry.FindByID(id)
	if !ok {
		return nil, s.unknownTemplateError(registry, id)
	}
	return template, nil
}

// ReadTemplate returns the backing file content of a template.
func (s *Service) ReadTemplate(template *models.Template) (string, error) {
	return s.storage.ReadTemplate(template)
}

// UpdateTemplate overwrites the named template's backing file with the
// content of sourcePath.
func (s *Service) UpdateTemplate(id, sourcePath string) (*models.Template, error) {
	template, err := s.FindTemplate(id)
	if err != nil {
		return nil, err
	}
	if err := s.storage.UpdateTemplate(template, sourcePath); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *Service) unknownTemplateError(registry *models.Registry, id string) error {
	message := fmt.Sprintf(
		"Unknown template id '%s'. Use the list command to inspect options.", id)
	if suggestion, ok := closestMatch(id, registry.IDs()); ok {
		message += fmt.Sprintf(" Did you mean '%s'?", suggestion)
	}
	return apperrors.NewAppError(apperrors.ErrCodeNotFound, message)
}

// closestMatch returns the best fuzzy candidate for input, if any.
func closestMatch(input string, candidates []string) (string, bool) {
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return "", false
	}
	return candidates[matches[0].Index], true
}

// selectTemplate resolves the template to generate from: an explicit id
// takes precedence over a script-type preference; at least one selector
// is mandatory.
func selectTemplate(s *Service, registry *models.Registry, templateID, scriptType string) (*models.Template, error) {
	if templateID != "" {
		template, ok := registry.FindByID(templateID)
		if !ok {
			return nil, s.unknownTemplateError(registry, templateID)
		}
		return template, nil
	}

	if scriptType != "" {
		template, ok := registry.FirstByScriptType(scriptType)
		if !ok {
			return nil, apperrors.NotFound(
				"No templates available for script type '%s'. Use the list command to confirm options.",
				scriptType)
		}
		return template, nil
	}

	return nil, apperrors.InvalidInput(
		"A template must be specified via --template-id or --script-type.")
}

func allowedGroups() string {
	return strings.Join(models.Groups(), ", ")
}
