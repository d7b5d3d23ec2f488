// Where: internal/helpers/deployment_loader.go
// What: Deployment configuration loader helpers.
// Why: Share config file access and the load announcement across commands.
package helpers

import (
	"io"

	"github.com/aws-osml/data-intake-cli/internal/deployment"
)

// DeploymentLoader loads a deployment configuration from a resolved path.
type DeploymentLoader func(path string) (*deployment.DeploymentConfig, error)

// DefaultDeploymentLoader returns the stock loader. All commands in one
// process share the wrapped Loader, so the informational line prints once
// no matter how many commands re-load the file.
func DefaultDeploymentLoader(out io.Writer) DeploymentLoader {
	loader := &deployment.Loader{Out: out}
	return loader.Load
}
