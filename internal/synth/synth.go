// Where: internal/synth/synth.go
// What: Deployment artifact synthesis.
// Why: Turn a validated deployment config into the files stack assembly and
//      integration tooling consume.
package synth

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws-osml/data-intake-cli/internal/deployment"
	"github.com/aws-osml/data-intake-cli/internal/manifest"
	"github.com/aws-osml/data-intake-cli/internal/schema"
)

const defaultIntegExpiryDays = 7

// Inputs carries everything one synthesis run needs.
type Inputs struct {
	Config    *deployment.DeploymentConfig
	OutputDir string
	// Overrides is an optional YAML document layered over dataplaneConfig.
	Overrides []byte
}

// Result lists the artifacts a synthesis run produced.
type Result struct {
	ContextPath  string
	EnvPaths     []string
	ManifestPath string
}

type Synthesizer struct {
	Out io.Writer
}

// Synthesize lints the pass-through blocks and writes the stack context, the
// per-function env files, and (when integration tests are enabled) the
// integration-test resource manifest.
func (s *Synthesizer) Synthesize(inputs Inputs) (Result, error) {
	cfg := inputs.Config
	if cfg == nil {
		return Result{}, fmt.Errorf("deployment config is required")
	}

	dataplane := cfg.Dataplane
	if len(inputs.Overrides) > 0 {
		merged, err := schema.MergeOverrides(dataplane, inputs.Overrides)
		if err != nil {
			return Result{}, err
		}
		dataplane = merged
	}
	if err := schema.ValidateDataplane(dataplane); err != nil {
		return Result{}, err
	}
	if err := schema.ValidateIntegration(cfg.IntegrationTest); err != nil {
		return Result{}, err
	}

	outputDir := inputs.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{}, err
	}

	result := Result{}

	contextPath := filepath.Join(outputDir, "stack.context.json")
	if err := writeStackContext(contextPath, cfg, dataplane); err != nil {
		return Result{}, err
	}
	result.ContextPath = contextPath

	envData := buildEnvData(cfg)
	for _, name := range []string{"intake", "ingest", "stac"} {
		rendered, err := renderTemplate(name+".env.tmpl", envData)
		if err != nil {
			return Result{}, err
		}
		path := filepath.Join(outputDir, name+".env")
		if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
			return Result{}, err
		}
		result.EnvPaths = append(result.EnvPaths, path)
	}

	if cfg.DeployIntegrationTests != nil && *cfg.DeployIntegrationTests {
		manifestPath := filepath.Join(outputDir, "integ-resources.yaml")
		if err := manifest.SaveResources(manifestPath, integResources(cfg)); err != nil {
			return Result{}, err
		}
		result.ManifestPath = manifestPath
	}

	if s.Out != nil {
		fmt.Fprintf(s.Out, "Synthesized %s\n", result.ContextPath)
		for _, path := range result.EnvPaths {
			fmt.Fprintf(s.Out, "Synthesized %s\n", path)
		}
		if result.ManifestPath != "" {
			fmt.Fprintf(s.Out, "Synthesized %s\n", result.ManifestPath)
		}
	}

	return result, nil
}

// stackContext mirrors the JSON contract the external stack-assembly tool reads.
type stackContext struct {
	ProjectName string         `json:"projectName"`
	Account     stackAccount   `json:"account"`
	Network     *stackNetwork  `json:"networkConfig,omitempty"`
	Dataplane   map[string]any `json:"dataplaneConfig,omitempty"`
	Integration map[string]any `json:"integrationTestConfig,omitempty"`
	DeployInteg bool           `json:"deployIntegrationTests"`
}

type stackAccount struct {
	ID       string `json:"id"`
	Region   string `json:"region"`
	ProdLike bool   `json:"prodLike"`
	IsADC    bool   `json:"isAdc"`
}

type stackNetwork struct {
	VPCName         string   `json:"vpcName,omitempty"`
	VPCID           string   `json:"vpcId,omitempty"`
	TargetSubnets   []string `json:"targetSubnets,omitempty"`
	SecurityGroupID string   `json:"securityGroupId,omitempty"`
}

func writeStackContext(path string, cfg *deployment.DeploymentConfig, dataplane map[string]any) error {
	context := stackContext{
		ProjectName: cfg.ProjectName,
		Account: stackAccount{
			ID:       cfg.Account.ID,
			Region:   cfg.Account.Region,
			ProdLike: cfg.Account.ProdLike,
			IsADC:    cfg.Account.IsADC,
		},
		Dataplane:   dataplane,
		Integration: cfg.IntegrationTest,
		DeployInteg: cfg.DeployIntegrationTests != nil && *cfg.DeployIntegrationTests,
	}
	if cfg.Network != nil {
		context.Network = &stackNetwork{
			VPCName:         cfg.Network.VPCName,
			VPCID:           cfg.Network.VPCID,
			TargetSubnets:   cfg.Network.TargetSubnets,
			SecurityGroupID: cfg.Network.SecurityGroupID,
		}
	}

	payload, err := json.MarshalIndent(context, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(payload, '\n'), 0o644)
}

func buildEnvData(cfg *deployment.DeploymentConfig) envTemplateData {
	data := envTemplateData{
		ProjectName:  cfg.ProjectName,
		Region:       cfg.Account.Region,
		OutputBucket: fmt.Sprintf("%s-intake-output", cfg.ProjectName),
		OutputTopicArn: fmt.Sprintf("arn:aws:sns:%s:%s:%s-stac-items",
			cfg.Account.Region, cfg.Account.ID, cfg.ProjectName),
		PostProcessingTopicArn: fmt.Sprintf("arn:aws:sns:%s:%s:%s-stac-post-processing",
			cfg.Account.Region, cfg.Account.ID, cfg.ProjectName),
	}
	if endpoint, ok := cfg.IntegrationTest["STAC_ENDPOINT"].(string); ok {
		data.StacEndpoint = endpoint
	}
	if collection, ok := cfg.IntegrationTest["COLLECTION_ID"].(string); ok {
		data.CollectionID = collection
	}
	if deconstruct, ok := cfg.Dataplane["DECONSTRUCT_FEATURE_COLLECTIONS"].(bool); ok {
		data.DeconstructFeatureCollections = deconstruct
	}
	return data
}

func integResources(cfg *deployment.DeploymentConfig) manifest.ResourcesSpec {
	expiry := defaultIntegExpiryDays
	if days, ok := cfg.IntegrationTest["TEST_RESULTS_EXPIRY_DAYS"].(float64); ok && days > 0 {
		expiry = int(days)
	}
	return manifest.ResourcesSpec{
		S3: []manifest.S3Spec{
			{
				BucketName:       fmt.Sprintf("%s-integ-imagery", cfg.ProjectName),
				ExpirationInDays: expiry,
			},
		},
		DynamoDB: []manifest.DynamoDBSpec{
			{
				TableName: fmt.Sprintf("%s-integ-runs", cfg.ProjectName),
				HashKey:   "run_id",
				RangeKey:  "started_at",
			},
		},
	}
}
