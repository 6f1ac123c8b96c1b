package cermine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Defaults for the Java backend.
const (
	DefaultJavaBin = "java"
	MainClass      = "pl.edu.icm.cermine.ContentExtractor"

	// DefaultTimeout bounds one extraction run. CERMINE can take minutes
	// on image-heavy papers.
	DefaultTimeout = 5 * time.Minute
)

// JavaRunner runs CERMINE as an out-of-process Java invocation over the
// working directory, requesting JATS output.
type JavaRunner struct {
	JavaBin string        // java executable, DefaultJavaBin if empty
	JarPath string        // path to the CERMINE jar
	Timeout time.Duration // per-run deadline, DefaultTimeout if zero
}

// Run invokes the extractor. A non-zero exit or an exceeded deadline is
// returned as an error; the caller maps it to an ExtractionError.
func (r *JavaRunner) Run(ctx context.Context, workDir string) error {
	if r.JarPath == "" {
		return fmt.Errorf("no CERMINE jar configured")
	}

	javaBin := r.JavaBin
	if javaBin == "" {
		javaBin = DefaultJavaBin
	}
	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, javaBin,
		"-cp", r.JarPath, MainClass,
		"-path", workDir,
		"-outputs", "jats",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("content extractor timed out after %s", timeout)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("content extractor: %w: %s", err, lastLine(msg))
		}
		return fmt.Errorf("content extractor: %w", err)
	}
	return nil
}

// lastLine returns the final line of multi-line tool output, usually the
// actual error message after a Java stack trace.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
