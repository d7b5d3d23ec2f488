// Where: internal/helpers/target_resolver.go
// What: Deployment target path resolution.
// Why: Centralize the flag / env / global-config / cwd lookup order.
package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws-osml/data-intake-cli/internal/config"
	"github.com/aws-osml/data-intake-cli/internal/meta"
)

// ResolveDeploymentPath determines which deployment.json a command should load.
// Priority:
// 1. --file flag
// 2. --target flag (looked up in the global config)
// 3. ODI_DEPLOYMENT_FILE environment variable
// 4. Active target recorded in the global config
// 5. deployment.json in the current directory
func ResolveDeploymentPath(fileFlag, targetFlag string) (string, error) {
	if path := strings.TrimSpace(fileFlag); path != "" {
		return absolute(path), nil
	}

	if name := strings.TrimSpace(targetFlag); name != "" {
		return lookupTarget(name)
	}

	if path := strings.TrimSpace(os.Getenv(meta.EnvPrefix + "_DEPLOYMENT_FILE")); path != "" {
		return absolute(path), nil
	}

	if cfgPath, err := config.GlobalConfigPath(); err == nil {
		if cfg, err := config.LoadGlobalConfig(cfgPath); err == nil && cfg.ActiveTarget != "" {
			if entry, ok := cfg.Targets[cfg.ActiveTarget]; ok && entry.Path != "" {
				return entry.Path, nil
			}
		}
	}

	return absolute(meta.DeploymentFileName), nil
}

func lookupTarget(name string) (string, error) {
	cfgPath, err := config.GlobalConfigPath()
	if err != nil {
		return "", err
	}
	cfg, err := config.LoadGlobalConfig(cfgPath)
	if err != nil {
		return "", fmt.Errorf("load global config: %w", err)
	}
	entry, ok := cfg.Targets[name]
	if !ok || entry.Path == "" {
		return "", fmt.Errorf("deployment target %q is not registered. Run '%s target add %s <path>' first",
			name, meta.AppName, name)
	}
	return entry.Path, nil
}

func absolute(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
