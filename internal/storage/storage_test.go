package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"checksmith/internal/config"
	apperrors "checksmith/internal/errors"
	"checksmith/internal/models"
)

func newTestStorage(t *testing.T) (*Storage, *config.Config) {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "templates"), 0755); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadFrom(root)
	if err != nil {
		t.Fatal(err)
	}
	return New(cfg), cfg
}

func writeRegistry(t *testing.T, cfg *config.Config, content string) {
	t.Helper()
	if err := os.WriteFile(cfg.RegistryPath(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadRegistry(t *testing.T) {
	store, cfg := newTestStorage(t)
	writeRegistry(t, cfg, `{
		"version": 3,
		"templates": [
			{
				"id": "bash-basic",
				"label": "Basic Bash Check",
				"description": "Default shell template",
				"script_type": "bash",
				"extension": "sh",
				"path": "basic.sh",
				"categories": ["security"],
				"placeholders": ["TITLE", "GIVEN", "WHEN", "THEN", "CHECK_ID", "COMMAND_HINT"]
			},
			{
				"id": "ps-basic",
				"script_type": "powershell",
				"extension": "ps1",
				"path": "basic.ps1"
			}
		]
	}`)

	registry, err := store.LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}

	if registry.Version != 3 {
		t.Errorf("version = %d, want 3", registry.Version)
	}
	if len(registry.Templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(registry.Templates))
	}

	first := registry.Templates[0]
	if first.Label != "Basic Bash Check" {
		t.Errorf("label = %q", first.Label)
	}
	if !filepath.IsAbs(first.Path) {
		t.Errorf("path %q is not absolute", first.Path)
	}
	if filepath.Dir(first.Path) != cfg.TemplatesDir {
		t.Errorf("path %q not resolved against templates dir %q", first.Path, cfg.TemplatesDir)
	}

	// Label falls back to the id when absent.
	if registry.Templates[1].Label != "ps-basic" {
		t.Errorf("default label = %q, want id", registry.Templates[1].Label)
	}
}

func TestLoadRegistryVersionDefaultsToOne(t *testing.T) {
	store, cfg := newTestStorage(t)
	writeRegistry(t, cfg, `{"templates": []}`)

	registry, err := store.LoadRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if registry.Version != 1 {
		t.Errorf("version = %d, want 1", registry.Version)
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	store, _ := newTestStorage(t)
	_, err := store.LoadRegistry()
	if err == nil {
		t.Fatal("expected error for missing registry")
	}
	if !strings.Contains(err.Error(), "Template registry not found") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestLoadRegistryMissingRequiredField(t *testing.T) {
	store, cfg := newTestStorage(t)
	writeRegistry(t, cfg, `{
		"version": 1,
		"templates": [{"id": "x", "extension": "sh", "path": "x.sh"}]
	}`)

	_, err := store.LoadRegistry()
	if err == nil {
		t.Fatal("expected hard failure for missing script_type")
	}
	if !strings.Contains(err.Error(), "missing required field: 'script_type'") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestLoadRegistryInvalidJSON(t *testing.T) {
	store, cfg := newTestStorage(t)
	writeRegistry(t, cfg, `{not json`)

	_, err := store.LoadRegistry()
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeRegistryError) {
		t.Errorf("expected registry error code, got %v", err)
	}
}

func TestWriteCheckExecutableBit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	store, cfg := newTestStorage(t)
	path := filepath.Join(cfg.ChecksDir, "security-redis-auth.sh")
	if err := store.WriteCheck(path, "#!/bin/sh\n", true); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&0111 == 0 {
		t.Error("expected executable bits to be set")
	}

	plain := filepath.Join(cfg.ChecksDir, "check.ps1")
	if err := store.WriteCheck(plain, "Write-Host hi\n", false); err != nil {
		t.Fatal(err)
	}
	info, err = os.Stat(plain)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&0111 != 0 {
		t.Error("expected no executable bits")
	}
}

func TestUpdateTemplate(t *testing.T) {
	store, cfg := newTestStorage(t)
	template := &models.Template{
		ID:   "bash-basic",
		Path: filepath.Join(cfg.TemplatesDir, "basic.sh"),
	}
	if err := os.WriteFile(template.Path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	source := filepath.Join(t.TempDir(), "new.sh")
	if err := os.WriteFile(source, []byte("new content"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := store.UpdateTemplate(template, source); err != nil {
		t.Fatalf("UpdateTemplate failed: %v", err)
	}

	data, err := os.ReadFile(template.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new content" {
		t.Errorf("template content = %q", data)
	}
}

func TestUpdateTemplateMissingSource(t *testing.T) {
	store, cfg := newTestStorage(t)
	template := &models.Template{
		ID:   "bash-basic",
		Path: filepath.Join(cfg.TemplatesDir, "basic.sh"),
	}

	err := store.UpdateTemplate(template, filepath.Join(t.TempDir(), "absent.sh"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if !strings.Contains(err.Error(), "Source file not found") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestWriteMetadata(t *testing.T) {
	store, _ := newTestStorage(t)
	path := filepath.Join(t.TempDir(), "meta", "check.json")

	metadata := models.Metadata{
		RegistryVersion: 3,
		TemplateID:      "bash-basic",
		ScriptType:      "bash",
		Group:           "security",
		Service:         "redis",
		Test:            "authentication",
		CheckID:         "security_redis_authentication",
		File:            "checks/security-redis-authentication.sh",
	}
	if err := store.WriteMetadata(path, metadata); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded models.Metadata
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != metadata {
		t.Errorf("round-trip mismatch: %+v", decoded)
	}
}
