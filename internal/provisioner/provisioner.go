// Where: internal/provisioner/provisioner.go
// What: Provisioner entrypoint for integration-test S3/DynamoDB resources.
// Why: Apply the synthesized resource manifest to a real or local endpoint.
package provisioner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws-osml/data-intake-cli/internal/manifest"
)

// Options carries per-invocation settings for Apply.
type Options struct {
	// Endpoint overrides the AWS endpoint, e.g. a LocalStack URL. Empty means
	// the SDK default resolution for the configured region.
	Endpoint string
	// Region is the target region from the deployment configuration.
	Region string
}

type Runner struct {
	Out     io.Writer
	Clients ClientFactory
}

func New(out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{
		Out:     out,
		Clients: awsClientFactory{},
	}
}

// Apply creates the resources described in the manifest, skipping any that
// already exist. Failures on individual resources are reported and do not
// abort the remaining work.
func (r *Runner) Apply(ctx context.Context, resources manifest.ResourcesSpec, opts Options) error {
	if r == nil {
		return fmt.Errorf("provisioner is nil")
	}
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	if r.Clients == nil {
		return fmt.Errorf("client factory not configured")
	}

	if len(resources.S3) == 0 && len(resources.DynamoDB) == 0 {
		fmt.Fprintln(out, "Nothing to provision.")
		return nil
	}

	if len(resources.S3) > 0 {
		client, err := r.Clients.S3(ctx, opts)
		if err != nil {
			return fmt.Errorf("configure S3 client: %w", err)
		}
		provisionS3(ctx, client, resources.S3, out)
	}

	if len(resources.DynamoDB) > 0 {
		client, err := r.Clients.DynamoDB(ctx, opts)
		if err != nil {
			return fmt.Errorf("configure DynamoDB client: %w", err)
		}
		provisionDynamo(ctx, client, resources.DynamoDB, out)
	}

	return nil
}
