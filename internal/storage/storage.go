// Package storage handles all file system operations for the template
// registry and generated checks: loading the JSON registry, reading
// template files, writing rendered checks, and replacing template
// content during updates.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"checksmith/internal/config"
	apperrors "checksmith/internal/errors"
	"checksmith/internal/models"
)

// Storage provides registry and check file access rooted at a resolved
// configuration.
type Storage struct {
	cfg *config.Config
}

// New creates a storage instance over the given configuration.
func New(cfg *config.Config) *Storage {
	return &Storage{cfg: cfg}
}

// ChecksDir returns the default directory generated checks are written
// to.
func (s *Storage) ChecksDir() string {
	return s.cfg.ChecksDir
}

// registryFile mirrors the on-disk registry document. Required fields
// are pointers so a missing key is distinguishable from an empty value;
// absence of any of them fails the whole load.
type registryFile struct {
	Version   *int            `json:"version"`
	Templates []registryEntry `json:"templates"`
}

type registryEntry struct {
	ID           *string  `json:"id"`
	Label        string   `json:"label"`
	Description  string   `json:"description"`
	ScriptType   *string  `json:"script_type"`
	Extension    *string  `json:"extension"`
	Path         *string  `json:"path"`
	Categories   []string `json:"categories"`
	Placeholders []string `json:"placeholders"`
}

// LoadRegistry reads and decodes the registry file. The registry is
// loaded atomically: a single malformed entry aborts the load. Template
// paths are resolved to absolute paths against the templates directory.
func (s *Storage) LoadRegistry() (*models.Registry, error) {
	path := s.cfg.RegistryPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Newf(apperrors.ErrCodeRegistryError,
				"Template registry not found: %s", path)
		}
		return nil, apperrors.StorageError("read template registry", err)
	}

	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeRegistryError,
			fmt.Sprintf("Template registry is not valid JSON: %v", err))
	}

	version := 1
	if file.Version != nil {
		version = *file.Version
	}

	registry := &models.Registry{Version: version}
	for _, entry := range file.Templates {
		template, err := s.templateFromEntry(entry)
		if err != nil {
			return nil, err
		}
		registry.Templates = append(registry.Templates, template)
	}
	return registry, nil
}

func (s *Storage) templateFromEntry(entry registryEntry) (*models.Template, error) {
	missing := ""
	switch {
	case entry.ID == nil:
		missing = "id"
	case entry.ScriptType == nil:
		missing = "script_type"
	case entry.Extension == nil:
		missing = "extension"
	case entry.Path == nil:
		missing = "path"
	}
	if missing != "" {
		return nil, apperrors.Newf(apperrors.ErrCodeRegistryError,
			"Template registry entry missing required field: '%s'", missing)
	}

	label := entry.Label
	if label == "" {
		label = *entry.ID
	}

	path := *entry.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.cfg.TemplatesDir, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	return &models.Template{
		ID:           *entry.ID,
		Label:        label,
		Description:  entry.Description,
		ScriptType:   *entry.ScriptType,
		Extension:    *entry.Extension,
		Path:         path,
		Categories:   entry.Categories,
		Placeholders: entry.Placeholders,
	}, nil
}

// ReadTemplate returns the backing file content of a template.
func (s *Storage) ReadTemplate(template *models.Template) (string, error) {
	data, err := os.ReadFile(template.Path)
	if err != nil {
		return "", apperrors.StorageError(
			fmt.Sprintf("read template %s", template.ID), err)
	}
	return string(data), nil
}

// WriteCheck writes a rendered check to path, creating parent
// directories as needed. Shell checks get the executable bits added on
// top of the current mode.
func (s *Storage) WriteCheck(path, content string, executable bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.StorageError("create output directory", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return apperrors.StorageError("write check file", err)
	}
	if executable {
		info, err := os.Stat(path)
		if err != nil {
			return apperrors.StorageError("stat check file", err)
		}
		if err := os.Chmod(path, info.Mode()|0111); err != nil {
			return apperrors.StorageError("mark check executable", err)
		}
	}
	return nil
}

// UpdateTemplate overwrites a template's backing file with the content
// of sourcePath.
func (s *Storage) UpdateTemplate(template *models.Template, sourcePath string) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.NotFound("Source file not found: %s", sourcePath)
		}
		return apperrors.StorageError("read source file", err)
	}
	if err := os.MkdirAll(filepath.Dir(template.Path), 0755); err != nil {
		return apperrors.StorageError("create template directory", err)
	}
	if err := os.WriteFile(template.Path, data, 0644); err != nil {
		return apperrors.StorageError("write template file", err)
	}
	return nil
}

// WriteMetadata persists generation metadata as indented JSON.
func (s *Storage) WriteMetadata(path string, metadata models.Metadata) error {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return apperrors.StorageError("encode metadata", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.StorageError("create metadata directory", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.StorageError("write metadata file", err)
	}
	return nil
}
