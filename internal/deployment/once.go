// Where: internal/deployment/once.go
// What: Loader wrapper owning the once-per-process load announcement.
// Why: Keep Load itself pure; the latch lives with the caller that wants the line.
package deployment

import (
	"fmt"
	"io"
)

// Loader wraps Load and writes a single informational line after the first
// successful load. The latch is never reset; construct one Loader per process.
type Loader struct {
	Out io.Writer

	announced bool
}

// Load delegates to the package-level Load and announces the first success.
func (l *Loader) Load(path string) (*DeploymentConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if !l.announced {
		l.announced = true
		if l.Out != nil {
			fmt.Fprintf(l.Out, "Loaded deployment configuration for %s from %s\n", cfg.ProjectName, path)
		}
	}
	return cfg, nil
}
