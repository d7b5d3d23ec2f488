// Where: internal/app/build.go
// What: Build command.
// Why: Build the intake/ingest/stac container images from a source checkout.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/aws-osml/data-intake-cli/internal/imagebuild"
)

// BuildCmd builds one container image per pipeline function.
type BuildCmd struct {
	Source  string `default:"." help:"Source checkout containing lambda/<function>/ build contexts"`
	Tag     string `help:"Image tag (default: latest)"`
	NoCache bool   `name:"no-cache" help:"Do not use the build cache"`
}

func runBuild(cli CLI, deps Dependencies, out io.Writer) int {
	path, err := deps.Resolver(cli.File, cli.TargetFlag)
	if err != nil {
		return exitWithError(out, err)
	}

	cfg, err := deps.Loader(path)
	if err != nil {
		return exitWithError(out, err)
	}

	// Source builds are opt-in; deployments normally pin CONTAINER_URI.
	if enabled, ok := cfg.Dataplane["BUILD_FROM_SOURCE"].(bool); !ok || !enabled {
		fmt.Fprintln(out, "dataplaneConfig.BUILD_FROM_SOURCE is not enabled; nothing to build")
		return 0
	}

	if deps.Build.ClientFactory == nil {
		fmt.Fprintln(out, "build: docker client not configured")
		return 1
	}
	client, closer, err := deps.Build.ClientFactory()
	if err != nil {
		return exitWithError(out, err)
	}
	if closer != nil {
		defer closer.Close()
	}

	builder := &imagebuild.Builder{Client: client, Out: out}
	images, err := builder.BuildImages(context.Background(), imagebuild.Options{
		SourceDir: cli.Build.Source,
		Tag:       cli.Build.Tag,
		NoCache:   cli.Build.NoCache,
	})
	if err != nil {
		return exitWithError(out, err)
	}

	fmt.Fprintf(out, "Built %d image(s)\n", len(images))
	return 0
}
