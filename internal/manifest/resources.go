// Where: internal/manifest/resources.go
// What: Integration-test resource manifest types.
// Why: Describe the desired S3/DynamoDB state the provisioner applies.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ResourcesSpec defines the desired state of integration-test resources.
// synth writes it, provision applies it.
//
// NOTE: Keep this package free of SDK dependencies; the provisioner layer
// maps these types onto SDK calls.
type ResourcesSpec struct {
	S3       []S3Spec       `yaml:"S3,omitempty"`
	DynamoDB []DynamoDBSpec `yaml:"DynamoDB,omitempty"`
}

// S3Spec defines the parameters for a test imagery bucket.
type S3Spec struct {
	BucketName string `yaml:"BucketName"`
	// ExpirationInDays applies a whole-bucket expiry lifecycle rule when > 0,
	// so integration-test artifacts clean themselves up.
	ExpirationInDays int `yaml:"ExpirationInDays,omitempty"`
}

// DynamoDBSpec defines the parameters for the test-run tracking table.
type DynamoDBSpec struct {
	TableName string `yaml:"TableName"`
	HashKey   string `yaml:"HashKey"`
	RangeKey  string `yaml:"RangeKey,omitempty"`
	// BillingMode is PAY_PER_REQUEST when empty.
	BillingMode string `yaml:"BillingMode,omitempty"`
}

// LoadResources reads a resource manifest from path.
func LoadResources(path string) (ResourcesSpec, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return ResourcesSpec{}, err
	}
	var spec ResourcesSpec
	if err := yaml.Unmarshal(payload, &spec); err != nil {
		return ResourcesSpec{}, fmt.Errorf("parse resource manifest %s: %w", path, err)
	}
	return spec, nil
}

// SaveResources writes a resource manifest to path.
func SaveResources(path string, spec ResourcesSpec) error {
	payload, err := yaml.Marshal(&spec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}
