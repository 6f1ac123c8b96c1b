package pdf

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/matsen/crystal/internal/publication"
)

// Opener resolves a publication's stored PDF and opens it in the
// configured reader.
type Opener struct {
	pdfRoot   string
	pdfReader string
}

// NewOpener creates an Opener for the configured PDF root and reader.
func NewOpener(pdfRoot, pdfReader string) *Opener {
	if pdfReader == "" {
		pdfReader = "system"
	}
	return &Opener{
		pdfRoot:   pdfRoot,
		pdfReader: pdfReader,
	}
}

// Resolve returns the absolute path of a publication's PDF, or an error
// when the publication has no file or the file is missing.
func (o *Opener) Resolve(p *publication.Publication) (string, error) {
	if o.pdfRoot == "" {
		return "", fmt.Errorf("pdf_root not configured")
	}
	if p.PDFPath == "" {
		return "", fmt.Errorf("publication %s has no stored PDF", p.ID)
	}

	fullPath := filepath.Join(o.pdfRoot, p.PDFPath)
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("PDF not found: %s", fullPath)
		}
		return "", fmt.Errorf("checking PDF: %w", err)
	}

	return fullPath, nil
}

// Open opens a publication's PDF using the configured reader.
func (o *Opener) Open(p *publication.Publication) error {
	fullPath, err := o.Resolve(p)
	if err != nil {
		return err
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = o.darwinCommand(fullPath)
	case "linux":
		cmd = o.linuxCommand(fullPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// darwinCommand returns the command to open a PDF on macOS.
func (o *Opener) darwinCommand(path string) *exec.Cmd {
	switch o.pdfReader {
	case "skim":
		return exec.Command("open", "-a", "Skim", path)
	default: // "system"
		return exec.Command("open", path)
	}
}

// linuxCommand returns the command to open a PDF on Linux.
func (o *Opener) linuxCommand(path string) *exec.Cmd {
	switch o.pdfReader {
	case "zathura":
		return exec.Command("zathura", path)
	case "evince":
		return exec.Command("evince", path)
	case "okular":
		return exec.Command("okular", path)
	default: // "system"
		return exec.Command("xdg-open", path)
	}
}
