// Where: internal/app/provision.go
// What: Provision command.
// Why: Create the integration-test S3/DynamoDB resources from the synthesized
//      manifest, optionally against a local endpoint.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aws-osml/data-intake-cli/internal/manifest"
	"github.com/aws-osml/data-intake-cli/internal/meta"
	"github.com/aws-osml/data-intake-cli/internal/provisioner"
)

// ProvisionCmd applies the integration-test resource manifest.
type ProvisionCmd struct {
	Manifest string `help:"Path to integ-resources.yaml (default: <out-dir>/integ-resources.yaml)"`
	Endpoint string `help:"AWS endpoint override, e.g. a LocalStack URL"`
}

func runProvision(cli CLI, deps Dependencies, out io.Writer) int {
	path, err := deps.Resolver(cli.File, cli.TargetFlag)
	if err != nil {
		return exitWithError(out, err)
	}

	cfg, err := deps.Loader(path)
	if err != nil {
		return exitWithError(out, err)
	}

	manifestPath := cli.Provision.Manifest
	if manifestPath == "" {
		manifestPath = filepath.Join(meta.OutputDir, "integ-resources.yaml")
	}
	resources, err := manifest.LoadResources(manifestPath)
	if err != nil {
		return exitWithError(out, fmt.Errorf("load resource manifest: %w (run 'odi synth' first)", err))
	}

	runner := deps.Provision.Runner
	if runner == nil {
		runner = provisioner.New(out)
	}

	opts := provisioner.Options{
		Endpoint: cli.Provision.Endpoint,
		Region:   cfg.Account.Region,
	}
	if err := runner.Apply(context.Background(), resources, opts); err != nil {
		return exitWithError(out, err)
	}
	return 0
}
