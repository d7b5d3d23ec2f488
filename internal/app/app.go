// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/aws-osml/data-intake-cli/internal/config"
	"github.com/aws-osml/data-intake-cli/internal/helpers"
	"github.com/aws-osml/data-intake-cli/internal/imagebuild"
	"github.com/aws-osml/data-intake-cli/internal/manifest"
	"github.com/aws-osml/data-intake-cli/internal/provisioner"
	"github.com/aws-osml/data-intake-cli/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command
// execution. This structure enables dependency injection for testing and
// allows swapping implementations of the AWS and Docker subsystems.
type Dependencies struct {
	Out      io.Writer
	Loader   helpers.DeploymentLoader
	Resolver func(fileFlag, targetFlag string) (string, error)
	Now      func() time.Time

	Provision ProvisionDeps
	Build     BuildDeps
}

// ProvisionDeps holds the provisioner implementation.
type ProvisionDeps struct {
	Runner ResourceApplier
}

// ResourceApplier applies an integration-test resource manifest.
type ResourceApplier interface {
	Apply(ctx context.Context, resources manifest.ResourcesSpec, opts provisioner.Options) error
}

// BuildDeps holds the lazily constructed Docker client for image builds.
type BuildDeps struct {
	ClientFactory func() (imagebuild.DockerClient, io.Closer, error)
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	File       string `short:"f" help:"Path to deployment.json"`
	TargetFlag string `short:"t" name:"target" help:"Registered deployment target name"`

	Validate  ValidateCmd  `cmd:"" help:"Validate the deployment configuration"`
	Synth     SynthCmd     `cmd:"" help:"Synthesize deployment artifacts"`
	Provision ProvisionCmd `cmd:"" help:"Provision integration-test resources"`
	Build     BuildCmd     `cmd:"" help:"Build Lambda container images"`
	Target    TargetCmd    `cmd:"" name:"target" help:"Manage deployment targets"`
	Version   VersionCmd   `cmd:"" help:"Show version information"`
}

type VersionCmd struct{}

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	if deps.Resolver == nil {
		deps.Resolver = helpers.ResolveDeploymentPath
	}
	if deps.Loader == nil {
		deps.Loader = helpers.DefaultDeploymentLoader(out)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	if err := config.EnsureGlobalConfig(); err != nil {
		return exitWithError(out, err)
	}

	// Handle no arguments: show current configuration and help pointers.
	if len(args) == 0 {
		return runInfo(CLI{}, deps, out)
	}

	cli := CLI{}
	parser, err := kong.New(&cli)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(out, err)
	}

	// Pick up a local .env so endpoint/credential overrides work per directory.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(out, "Warning: failed to load .env: %v\n", err)
		}
	}

	command := ctx.Command()
	if exitCode, handled := dispatchCommand(command, cli, deps, out); handled {
		return exitCode
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

type prefixHandler struct {
	prefix  string
	handler commandHandler
}

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"validate":    runValidate,
		"synth":       runSynth,
		"provision":   runProvision,
		"build":       runBuild,
		"target":      runTargetList,
		"target list": runTargetList,
		"target ls":   runTargetList,
		"version":     func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(out) },
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(cli, deps, out), true
	}

	prefixHandlers := []prefixHandler{
		{prefix: "target add", handler: runTargetAdd},
		{prefix: "target use", handler: runTargetUse},
		{prefix: "target remove", handler: runTargetRemove},
	}

	for _, entry := range prefixHandlers {
		if strings.HasPrefix(command, entry.prefix) {
			return entry.handler(cli, deps, out), true
		}
	}

	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	fmt.Fprintln(out, version.GetVersion())
	return 0
}
