// Where: internal/app/validate.go
// What: Validate command.
// Why: Load and check a deployment.json, then summarize the target.
package app

import (
	"io"
	"strconv"

	"github.com/aws-osml/data-intake-cli/internal/ui"
)

// ValidateCmd checks the resolved deployment.json and prints a summary.
type ValidateCmd struct{}

// runValidate resolves the deployment file, loads it through the shared
// loader, and prints the parsed target. Any loader error is shown verbatim
// since the loader's messages already name the offending field.
func runValidate(cli CLI, deps Dependencies, out io.Writer) int {
	path, err := deps.Resolver(cli.File, cli.TargetFlag)
	if err != nil {
		return exitWithError(out, err)
	}

	cfg, err := deps.Loader(path)
	if err != nil {
		return exitWithError(out, err)
	}

	console := ui.New(out)
	console.Header("🛰️", "Deployment target")
	console.Item("Project", cfg.ProjectName)
	console.Item("Account", cfg.Account.ID)
	console.Item("Region", cfg.Account.Region)
	console.Item("Prod-like", strconv.FormatBool(cfg.Account.ProdLike))
	console.Item("ADC partition", strconv.FormatBool(cfg.Account.IsADC))

	if network := cfg.Network; network != nil {
		console.Header("🌐", "Network")
		if network.VPCName != "" {
			console.Item("VPC name", network.VPCName)
		}
		if network.VPCID != "" {
			console.Item("VPC ID", network.VPCID)
			console.Item("Subnets", strconv.Itoa(len(network.TargetSubnets)))
		}
		if network.SecurityGroupID != "" {
			console.Item("Security group", network.SecurityGroupID)
		}
	}

	console.Success("deployment configuration is valid")
	return 0
}
