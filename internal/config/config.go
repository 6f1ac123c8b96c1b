// Package config handles repository and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/crystal/internal/resolve"
)

// Config represents repository configuration stored in .crystal/config.json.
type Config struct {
	PDFRoot   string `json:"pdf_root"`   // Absolute path to PDF folder
	PDFReader string `json:"pdf_reader"` // Reader preference: system, skim, zathura, etc.

	CermineJar string `json:"cermine_jar"`        // Path to the CERMINE jar
	JavaBin    string `json:"java_bin,omitempty"` // Java executable, "java" if empty

	// ExtractTimeoutSeconds bounds one extraction run; 0 uses the
	// extractor default.
	ExtractTimeoutSeconds int `json:"extract_timeout_seconds,omitempty"`

	// MatchThreshold is the minimum fuzz ratio for a reference title to
	// resolve to an existing publication; 0 uses the resolver default.
	MatchThreshold int `json:"match_threshold,omitempty"`
}

const (
	CrystalDir = ".crystal"
	ConfigFile = "config.json"
	DBFile     = "crystal.db"
)

// ValidReaders lists the supported PDF reader values.
var ValidReaders = []string{"system", "skim", "zathura", "evince", "okular"}

// CrystalPath returns the path to the .crystal directory from a root path.
func CrystalPath(root string) string {
	return filepath.Join(root, CrystalDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, CrystalDir, ConfigFile)
}

// DBPath returns the path to the database from a root path.
func DBPath(root string) string {
	return filepath.Join(root, CrystalDir, DBFile)
}

// Threshold returns the configured match threshold or the resolver default.
func (c *Config) Threshold() int {
	if c.MatchThreshold > 0 {
		return c.MatchThreshold
	}
	return resolve.DefaultThreshold
}

// IsRepository checks if the given path contains a crystal repository.
func IsRepository(root string) bool {
	info, err := os.Stat(CrystalPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a crystal repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a crystal repository (no .crystal directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ValidatePDFRoot checks that the PDF root path exists and is a directory.
func ValidatePDFRoot(path string) error {
	if path == "" {
		return nil // Empty is allowed (not yet configured)
	}

	expandedPath := ExpandPath(path)

	info, err := os.Stat(expandedPath)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", expandedPath)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", expandedPath)
	}

	return nil
}

// ValidatePDFReader checks that the reader value is valid.
func ValidatePDFReader(reader string) error {
	if reader == "" {
		return nil // Empty defaults to "system"
	}

	for _, valid := range ValidReaders {
		if reader == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid pdf_reader: %s (valid: %v)", reader, ValidReaders)
}

// ValidateCermineJar checks that the configured jar exists.
func ValidateCermineJar(path string) error {
	if path == "" {
		return nil // Empty is allowed (extraction not yet configured)
	}

	expandedPath := ExpandPath(path)
	info, err := os.Stat(expandedPath)
	if err != nil {
		return fmt.Errorf("jar does not exist: %s", expandedPath)
	}
	if info.IsDir() {
		return fmt.Errorf("jar path is a directory: %s", expandedPath)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
