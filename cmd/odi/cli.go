// Where: cmd/odi/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"io"
	"os"

	"github.com/aws-osml/data-intake-cli/internal/app"
	"github.com/aws-osml/data-intake-cli/internal/helpers"
	"github.com/aws-osml/data-intake-cli/internal/imagebuild"
	"github.com/aws-osml/data-intake-cli/internal/provisioner"
)

var newDockerClient = imagebuild.NewDockerClient

// buildDependencies constructs the runtime dependencies for the CLI. The
// Docker client is created lazily so non-build commands never touch the
// daemon socket.
func buildDependencies() app.Dependencies {
	return app.Dependencies{
		Out:      os.Stdout,
		Loader:   helpers.DefaultDeploymentLoader(os.Stdout),
		Resolver: helpers.ResolveDeploymentPath,
		Provision: app.ProvisionDeps{
			Runner: provisioner.New(os.Stdout),
		},
		Build: app.BuildDeps{
			ClientFactory: func() (imagebuild.DockerClient, io.Closer, error) {
				client, err := newDockerClient()
				if err != nil {
					return nil, nil, err
				}
				return client, client, nil
			},
		},
	}
}
