// Where: internal/app/info.go
// What: No-args info view.
// Why: Give users a quick look at the config and the active target.
package app

import (
	"fmt"
	"io"

	"github.com/aws-osml/data-intake-cli/internal/meta"
	"github.com/aws-osml/data-intake-cli/internal/version"
)

// runInfo displays the global configuration and the resolved deployment
// target. Used when odi is invoked without arguments.
func runInfo(cli CLI, deps Dependencies, out io.Writer) int {
	configPath, cfg, err := loadGlobalConfigWithPath()
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}

	fmt.Fprintln(out, "⚙️  Config")
	fmt.Fprintf(out, "   version: %s\n", version.GetVersion())
	fmt.Fprintf(out, "   path:    %s\n", configPath)

	if len(cfg.Targets) == 0 {
		fmt.Fprintln(out, "\n📦 No deployment targets registered.")
		fmt.Fprintf(out, "   Run '%s target add <name> <path>' to get started.\n", meta.AppName)
		return 1
	}

	fmt.Fprintln(out, "\n📦 Targets")
	runTargetList(cli, deps, out)

	resolved, err := deps.Resolver(cli.File, cli.TargetFlag)
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}

	fmt.Fprintln(out, "\n🛰️  Deployment")
	fmt.Fprintf(out, "   file: %s\n", resolved)
	deployment, err := deps.Loader(resolved)
	if err != nil {
		fmt.Fprintf(out, "   stat: %v\n", err)
		return 0
	}
	fmt.Fprintf(out, "   proj: %s\n", deployment.ProjectName)
	fmt.Fprintf(out, "   acct: %s (%s)\n", deployment.Account.ID, deployment.Account.Region)
	return 0
}
