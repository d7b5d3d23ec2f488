// Where: internal/app/target.go
// What: Target management commands.
// Why: Register and switch between deployment.json files by name.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/aws-osml/data-intake-cli/internal/config"
	"github.com/aws-osml/data-intake-cli/internal/meta"
)

// TargetCmd groups the target subcommands. With no subcommand it lists
// registered targets.
type TargetCmd struct {
	Add    TargetAddCmd    `cmd:"" help:"Register a deployment target"`
	List   TargetListCmd   `cmd:"" default:"1" aliases:"ls" help:"List registered targets"`
	Use    TargetUseCmd    `cmd:"" help:"Set the active target"`
	Remove TargetRemoveCmd `cmd:"" help:"Remove a registered target"`
}

type TargetAddCmd struct {
	Name string `arg:"" help:"Target name"`
	Path string `arg:"" help:"Path to deployment.json"`
}

type TargetListCmd struct{}

type TargetUseCmd struct {
	Name string `arg:"" help:"Target name"`
}

type TargetRemoveCmd struct {
	Name string `arg:"" help:"Target name"`
}

func runTargetAdd(cli CLI, deps Dependencies, out io.Writer) int {
	path, cfg, err := loadGlobalConfigWithPath()
	if err != nil {
		return exitWithError(out, err)
	}

	targetPath, err := filepath.Abs(cli.Target.Add.Path)
	if err != nil {
		return exitWithError(out, err)
	}
	if info, err := os.Stat(targetPath); err != nil {
		return exitWithError(out, fmt.Errorf("deployment file %s: %w", targetPath, err))
	} else if info.IsDir() {
		targetPath = filepath.Join(targetPath, meta.DeploymentFileName)
		if _, err := os.Stat(targetPath); err != nil {
			return exitWithError(out, fmt.Errorf("deployment file %s: %w", targetPath, err))
		}
	}

	name := cli.Target.Add.Name
	if cfg.Targets == nil {
		cfg.Targets = map[string]config.TargetEntry{}
	}
	cfg.Targets[name] = config.TargetEntry{
		Path:     targetPath,
		LastUsed: deps.Now().UTC().Format(time.RFC3339),
	}
	if cfg.ActiveTarget == "" {
		cfg.ActiveTarget = name
	}
	if err := config.SaveGlobalConfig(path, cfg); err != nil {
		return exitWithError(out, err)
	}

	fmt.Fprintf(out, "registered target %q -> %s\n", name, targetPath)
	return 0
}

func runTargetList(_ CLI, _ Dependencies, out io.Writer) int {
	_, cfg, err := loadGlobalConfigWithPath()
	if err != nil {
		return exitWithError(out, err)
	}

	if len(cfg.Targets) == 0 {
		fmt.Fprintln(out, "No targets registered.")
		fmt.Fprintf(out, "Run '%s target add <name> <path>' to get started.\n", meta.AppName)
		return 0
	}

	names := make([]string, 0, len(cfg.Targets))
	for name := range cfg.Targets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		marker := "  "
		if name == cfg.ActiveTarget {
			marker = "* "
		}
		fmt.Fprintf(out, "%s%-16s %s\n", marker, name, cfg.Targets[name].Path)
	}
	return 0
}

func runTargetUse(cli CLI, deps Dependencies, out io.Writer) int {
	path, cfg, err := loadGlobalConfigWithPath()
	if err != nil {
		return exitWithError(out, err)
	}

	name := cli.Target.Use.Name
	entry, ok := cfg.Targets[name]
	if !ok {
		return exitWithError(out, fmt.Errorf(
			"deployment target %q is not registered. Run '%s target add %s <path>' first",
			name, meta.AppName, name))
	}

	entry.LastUsed = deps.Now().UTC().Format(time.RFC3339)
	cfg.Targets[name] = entry
	cfg.ActiveTarget = name
	if err := config.SaveGlobalConfig(path, cfg); err != nil {
		return exitWithError(out, err)
	}

	fmt.Fprintf(out, "active target: %s\n", name)
	return 0
}

func runTargetRemove(cli CLI, _ Dependencies, out io.Writer) int {
	path, cfg, err := loadGlobalConfigWithPath()
	if err != nil {
		return exitWithError(out, err)
	}

	name := cli.Target.Remove.Name
	if _, ok := cfg.Targets[name]; !ok {
		return exitWithError(out, fmt.Errorf("deployment target %q is not registered", name))
	}

	delete(cfg.Targets, name)
	if cfg.ActiveTarget == name {
		cfg.ActiveTarget = ""
	}
	if err := config.SaveGlobalConfig(path, cfg); err != nil {
		return exitWithError(out, err)
	}

	fmt.Fprintf(out, "removed target %q\n", name)
	return 0
}

func loadGlobalConfigWithPath() (string, config.GlobalConfig, error) {
	path, err := config.GlobalConfigPath()
	if err != nil {
		return "", config.GlobalConfig{}, err
	}
	cfg, err := config.LoadGlobalConfig(path)
	if err != nil {
		return "", config.GlobalConfig{}, err
	}
	return path, cfg, nil
}
