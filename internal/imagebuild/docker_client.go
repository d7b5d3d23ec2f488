// Where: internal/imagebuild/docker_client.go
// What: Docker SDK client surface for image builds.
// Why: Keep the build code mockable and the SDK dependency in one place.
package imagebuild

import (
	"context"
	"io"

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/client"
)

// DockerClient defines the subset of Docker SDK methods used by this package.
type DockerClient interface {
	ImageBuild(ctx context.Context, buildContext io.Reader, options build.ImageBuildOptions) (build.ImageBuildResponse, error)
}

// NewDockerClient constructs a Docker client from the environment
// (DOCKER_HOST et al.), negotiating the API version with the daemon.
func NewDockerClient() (*client.Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}
