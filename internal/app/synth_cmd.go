// Where: internal/app/synth_cmd.go
// What: Synth command.
// Why: Produce the stack context, env files, and integ manifest for a target.
package app

import (
	"io"
	"os"

	"github.com/aws-osml/data-intake-cli/internal/meta"
	"github.com/aws-osml/data-intake-cli/internal/synth"
)

// SynthCmd renders deployment artifacts into the output directory.
type SynthCmd struct {
	Out       string `short:"o" default:".odi" help:"Output directory for synthesized artifacts"`
	Overrides string `help:"YAML file layered over dataplaneConfig before synthesis"`
}

func runSynth(cli CLI, deps Dependencies, out io.Writer) int {
	path, err := deps.Resolver(cli.File, cli.TargetFlag)
	if err != nil {
		return exitWithError(out, err)
	}

	cfg, err := deps.Loader(path)
	if err != nil {
		return exitWithError(out, err)
	}

	var overrides []byte
	if cli.Synth.Overrides != "" {
		overrides, err = os.ReadFile(cli.Synth.Overrides)
		if err != nil {
			return exitWithError(out, err)
		}
	}

	outputDir := cli.Synth.Out
	if outputDir == "" {
		outputDir = meta.OutputDir
	}

	synthesizer := &synth.Synthesizer{Out: out}
	if _, err := synthesizer.Synthesize(synth.Inputs{
		Config:    cfg,
		OutputDir: outputDir,
		Overrides: overrides,
	}); err != nil {
		return exitWithError(out, err)
	}
	return 0
}
