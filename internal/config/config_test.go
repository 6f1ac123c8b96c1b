package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/crystal/internal/resolve"
)

func setupRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(CrystalPath(root), 0755); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestConfig_SaveLoad(t *testing.T) {
	root := setupRepo(t)

	cfg := &Config{
		PDFRoot:               "/papers",
		PDFReader:             "skim",
		CermineJar:            "/opt/cermine/cermine.jar",
		ExtractTimeoutSeconds: 120,
		MatchThreshold:        80,
	}
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Load() = %+v, want %+v", loaded, cfg)
	}
}

func TestConfig_Threshold(t *testing.T) {
	if got := (&Config{}).Threshold(); got != resolve.DefaultThreshold {
		t.Errorf("default Threshold() = %d, want %d", got, resolve.DefaultThreshold)
	}
	if got := (&Config{MatchThreshold: 90}).Threshold(); got != 90 {
		t.Errorf("Threshold() = %d, want 90", got)
	}
}

func TestFindRepository(t *testing.T) {
	root := setupRepo(t)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindRepository(nested)
	if err != nil {
		t.Fatalf("FindRepository() error = %v", err)
	}
	// Resolve symlinks: t.TempDir may live under a symlinked path on macOS.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(found)
	if gotResolved != wantResolved {
		t.Errorf("FindRepository() = %s, want %s", found, root)
	}

	if _, err := FindRepository(t.TempDir()); err == nil {
		t.Error("FindRepository() outside a repository should fail")
	}
}

func TestValidatePDFReader(t *testing.T) {
	tests := []struct {
		reader  string
		wantErr bool
	}{
		{reader: "", wantErr: false},
		{reader: "system", wantErr: false},
		{reader: "zathura", wantErr: false},
		{reader: "acrobat", wantErr: true},
	}

	for _, tt := range tests {
		err := ValidatePDFReader(tt.reader)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePDFReader(%q) error = %v, wantErr %v", tt.reader, err, tt.wantErr)
		}
	}
}

func TestValidateCermineJar(t *testing.T) {
	if err := ValidateCermineJar(""); err != nil {
		t.Errorf("empty jar path should be allowed: %v", err)
	}

	dir := t.TempDir()
	jar := filepath.Join(dir, "cermine.jar")
	if err := os.WriteFile(jar, []byte("PK"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateCermineJar(jar); err != nil {
		t.Errorf("ValidateCermineJar(%s) error = %v", jar, err)
	}

	if err := ValidateCermineJar(filepath.Join(dir, "missing.jar")); err == nil {
		t.Error("missing jar should fail validation")
	}
	if err := ValidateCermineJar(dir); err == nil {
		t.Error("directory should fail validation")
	}
}
