// Where: internal/imagebuild/builder.go
// What: Lambda container image builds.
// Why: Build the intake/ingest/stac images from source when the dataplane
//      overrides request BUILD_FROM_SOURCE.
package imagebuild

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/docker/docker/api/types/build"

	"github.com/aws-osml/data-intake-cli/internal/meta"
)

// Functions lists the pipeline's container images in build order.
var Functions = []string{"intake", "ingest", "stac"}

// Options carries per-invocation build settings.
type Options struct {
	// SourceDir is the checkout containing lambda/<function>/ build contexts.
	SourceDir string
	// Tag applied to every image; "latest" when empty.
	Tag     string
	NoCache bool
}

type Builder struct {
	Client DockerClient
	Out    io.Writer
}

// BuildImages builds one image per pipeline function, named
// osml-<function>:<tag>. The first failure aborts the run so a broken base
// layer isn't retried three times.
func (b *Builder) BuildImages(ctx context.Context, opts Options) ([]string, error) {
	if b == nil || b.Client == nil {
		return nil, fmt.Errorf("docker client not configured")
	}
	out := b.Out
	if out == nil {
		out = io.Discard
	}
	tag := opts.Tag
	if tag == "" {
		tag = "latest"
	}

	var images []string
	for _, function := range Functions {
		contextDir := filepath.Join(opts.SourceDir, "lambda", function)
		if _, err := os.Stat(contextDir); err != nil {
			return images, fmt.Errorf("build context for %s: %w", function, err)
		}

		buildContext, err := tarBuildContext(contextDir)
		if err != nil {
			return images, fmt.Errorf("package build context for %s: %w", function, err)
		}

		image := fmt.Sprintf("%s-%s:%s", meta.ImagePrefix, function, tag)
		fmt.Fprintf(out, "Building %s from %s\n", image, contextDir)

		resp, err := b.Client.ImageBuild(ctx, buildContext, build.ImageBuildOptions{
			Tags:       []string{image},
			Dockerfile: "Dockerfile",
			NoCache:    opts.NoCache,
			Remove:     true,
			Labels: map[string]string{
				meta.LabelPrefix + ".function": function,
			},
		})
		if err != nil {
			return images, fmt.Errorf("build %s: %w", image, err)
		}
		// Drain the daemon's progress stream; the build isn't done until EOF.
		if resp.Body != nil {
			_, copyErr := io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if copyErr != nil {
				return images, fmt.Errorf("build %s: %w", image, copyErr)
			}
		}

		images = append(images, image)
		fmt.Fprintf(out, "Built %s\n", image)
	}
	return images, nil
}
