package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifestMissingFileIsNotFound(t *testing.T) {
	m, found, err := LoadManifest(filepath.Join(t.TempDir(), "jd.project.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if found {
		t.Fatal("found = true for a missing manifest")
	}
	if m != nil {
		t.Fatalf("manifest = %+v, want nil", m)
	}
}

func TestLoadManifestParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jd.project.yaml")
	content := `
source: release.jd
libraries:
  - lib/notebook.go
  - lib/slides.go
variables:
  - signature:jason
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, found, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if !found {
		t.Fatal("found = false, want true")
	}
	if m.Source != "release.jd" {
		t.Errorf("Source = %q, want release.jd", m.Source)
	}
	if len(m.Libraries) != 2 || m.Libraries[0] != "lib/notebook.go" {
		t.Errorf("Libraries = %v", m.Libraries)
	}
	if len(m.Variables) != 1 || m.Variables[0] != "signature:jason" {
		t.Errorf("Variables = %v", m.Variables)
	}
}
