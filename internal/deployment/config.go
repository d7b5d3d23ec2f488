// Where: internal/deployment/config.go
// What: Deployment configuration value types.
// Why: Give stack assembly a fully validated, normalized view of deployment.json.
package deployment

// DeploymentConfig is the validated, normalized content of deployment.json.
// Load returns it fully assembled or not at all; callers never see a partially
// populated value.
type DeploymentConfig struct {
	// ProjectName is the non-empty naming prefix for deployed resources.
	ProjectName string
	// Account identifies the target AWS account.
	Account AccountConfig
	// Network is nil when the file carries no networkConfig block, so callers
	// can tell "no network override" from "override with no fields".
	Network *NetworkConfig
	// Dataplane holds arbitrary dataplane overrides, stored verbatim.
	// Shape validation belongs to the downstream construct configuration.
	Dataplane map[string]any
	// IntegrationTest holds arbitrary integration-test overrides, stored verbatim.
	IntegrationTest map[string]any
	// DeployIntegrationTests is nil when the flag is absent from the file.
	DeployIntegrationTests *bool
}

// AccountConfig identifies the deployment target account and its flags.
type AccountConfig struct {
	// ID is a 12-digit AWS account ID.
	ID string
	// Region is an AWS-region-shaped string, e.g. us-west-2.
	Region string
	// ProdLike defaults to false when absent from the file.
	ProdLike bool
	// IsADC defaults to false when absent from the file.
	IsADC bool
}

// NetworkConfig carries the optional VPC placement override.
type NetworkConfig struct {
	VPCName string
	// VPCID, when set, matched the vpc-xxxxxxxx (8 or 17 hex digits) shape.
	VPCID string
	// TargetSubnets preserves input order. Guaranteed non-nil whenever VPCID
	// is set; emptiness and element shape are not validated here.
	TargetSubnets   []string
	SecurityGroupID string
}
