// Where: internal/manifest/resources_test.go
// What: Tests for resource manifest round-tripping.
package manifest

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestResourcesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "integ-resources.yaml")
	spec := ResourcesSpec{
		S3: []S3Spec{
			{BucketName: "test-project-integ-imagery", ExpirationInDays: 7},
		},
		DynamoDB: []DynamoDBSpec{
			{TableName: "test-project-integ-runs", HashKey: "run_id", RangeKey: "started_at"},
		},
	}

	if err := SaveResources(path, spec); err != nil {
		t.Fatalf("save manifest: %v", err)
	}
	loaded, err := LoadResources(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if !reflect.DeepEqual(spec, loaded) {
		t.Fatalf("manifest did not round-trip: %+v vs %+v", spec, loaded)
	}
}

func TestLoadResourcesRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "integ-resources.yaml")
	if err := SaveResources(path, ResourcesSpec{}); err != nil {
		t.Fatalf("save manifest: %v", err)
	}
	if _, err := LoadResources(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing manifest")
	}
}
