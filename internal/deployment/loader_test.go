// Where: internal/deployment/loader_test.go
// What: Tests for deployment.json loading and validation.
// Why: Lock down the error taxonomy and normalization the deploy commands rely on.
package deployment

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeDeployment(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deployment.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write deployment.json: %v", err)
	}
	return path
}

func loadExpectingError(t *testing.T, content string, kind ErrorKind, fragment string) *Error {
	t.Helper()
	_, err := Load(writeDeployment(t, content))
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var typed *Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected *deployment.Error, got %T: %v", err, err)
	}
	if typed.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%v)", kind, typed.Kind, typed)
	}
	if !strings.Contains(typed.Message, fragment) {
		t.Fatalf("expected message containing %q, got %q", fragment, typed.Message)
	}
	return typed
}

const minimalConfig = `{
  "projectName": "test-project",
  "account": {"id": "123456789012", "region": "us-west-2"}
}`

func TestLoadMinimalConfigDefaults(t *testing.T) {
	cfg, err := Load(writeDeployment(t, minimalConfig))
	if err != nil {
		t.Fatalf("load minimal config: %v", err)
	}
	if cfg.ProjectName != "test-project" {
		t.Fatalf("unexpected project name: %q", cfg.ProjectName)
	}
	if cfg.Account.ID != "123456789012" || cfg.Account.Region != "us-west-2" {
		t.Fatalf("unexpected account: %+v", cfg.Account)
	}
	if cfg.Account.ProdLike || cfg.Account.IsADC {
		t.Fatalf("expected flags defaulted to false: %+v", cfg.Account)
	}
	if cfg.Network != nil {
		t.Fatalf("expected absent network config, got %+v", cfg.Network)
	}
	if cfg.Dataplane != nil || cfg.IntegrationTest != nil {
		t.Fatalf("expected absent pass-through blocks")
	}
	if cfg.DeployIntegrationTests != nil {
		t.Fatalf("expected absent deployIntegrationTests flag")
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deployment.json")
	_, err := Load(path)
	var typed *Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected *deployment.Error, got %T: %v", err, err)
	}
	if typed.Kind != KindConfigNotFound {
		t.Fatalf("expected ConfigNotFound, got %s", typed.Kind)
	}
	if !strings.Contains(typed.Message, "Missing deployment.json") {
		t.Fatalf("expected filename in message: %q", typed.Message)
	}
	if !strings.Contains(typed.Message, path) {
		t.Fatalf("expected attempted path in message: %q", typed.Message)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	loadExpectingError(t, "{ invalid json }", KindInvalidFormat, "Invalid JSON format")
}

func TestLoadNonObjectDocument(t *testing.T) {
	for _, content := range []string{`[1, 2, 3]`, `"scalar"`, `null`} {
		loadExpectingError(t, content, KindInvalidFormat, "Invalid JSON format")
	}
}

func TestLoadMissingProjectName(t *testing.T) {
	err := loadExpectingError(t, `{"account": {"id": "123456789012", "region": "us-west-2"}}`,
		KindMissingField, "Missing required field: projectName")
	if err.Field != "projectName" {
		t.Fatalf("unexpected field tag: %q", err.Field)
	}
}

func TestLoadProjectNameWrongType(t *testing.T) {
	loadExpectingError(t, `{"projectName": 42, "account": {"id": "123456789012", "region": "us-west-2"}}`,
		KindTypeMismatch, "projectName must be a string")
}

func TestLoadEmptyProjectName(t *testing.T) {
	for _, name := range []string{`""`, `"   "`} {
		loadExpectingError(t, `{"projectName": `+name+`, "account": {"id": "123456789012", "region": "us-west-2"}}`,
			KindEmptyField, "cannot be empty")
	}
}

func TestLoadMissingAccount(t *testing.T) {
	loadExpectingError(t, `{"projectName": "p"}`, KindMissingField, "Missing required field: account")
	loadExpectingError(t, `{"projectName": "p", "account": "not-an-object"}`,
		KindMissingField, "Missing required field: account")
}

func TestLoadAccountIDValidation(t *testing.T) {
	loadExpectingError(t, `{"projectName": "p", "account": {"region": "us-west-2"}}`,
		KindMissingField, "Missing required field: account.id")
	for _, id := range []string{`"12345"`, `"invalid-id"`, `""`} {
		loadExpectingError(t, `{"projectName": "p", "account": {"id": `+id+`, "region": "us-west-2"}}`,
			KindInvalidFormat, "Invalid AWS account ID format")
	}
}

func TestLoadRegionValidation(t *testing.T) {
	loadExpectingError(t, `{"projectName": "p", "account": {"id": "123456789012"}}`,
		KindMissingField, "Missing required field: account.region")
	for _, region := range []string{`"invalid-region"`, `"invalid_region_123"`, `"us-west-0"`} {
		loadExpectingError(t, `{"projectName": "p", "account": {"id": "123456789012", "region": `+region+`}}`,
			KindInvalidFormat, "Invalid AWS region format")
	}
}

func TestLoadAcceptsRegionShapes(t *testing.T) {
	for _, region := range []string{"us-east-1", "eu-central-1", "ap-southeast-2", "gov-west-1", "il-central-1"} {
		content := `{"projectName": "p", "account": {"id": "123456789012", "region": "` + region + `"}}`
		if _, err := Load(writeDeployment(t, content)); err != nil {
			t.Fatalf("expected region %s to validate: %v", region, err)
		}
	}
}

func TestLoadAccountFlags(t *testing.T) {
	cfg, err := Load(writeDeployment(t,
		`{"projectName": "p", "account": {"id": "123456789012", "region": "us-west-2", "prodLike": true, "isAdc": true}}`))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Account.ProdLike || !cfg.Account.IsADC {
		t.Fatalf("expected both flags true: %+v", cfg.Account)
	}

	loadExpectingError(t,
		`{"projectName": "p", "account": {"id": "123456789012", "region": "us-west-2", "prodLike": "yes"}}`,
		KindTypeMismatch, "account.prodLike must be a boolean")
}

func TestLoadInvalidVPCID(t *testing.T) {
	for _, id := range []string{`"vpc-123"`, `"vpc-XYZ12345"`, `"subnet-0a1b2c3d"`} {
		loadExpectingError(t,
			`{"projectName": "p", "account": {"id": "123456789012", "region": "us-west-2"},
			  "networkConfig": {"VPC_ID": `+id+`}}`,
			KindInvalidFormat, "Invalid VPC ID format")
	}
}

func TestLoadVPCIDRequiresTargetSubnets(t *testing.T) {
	err := loadExpectingError(t,
		`{"projectName": "p", "account": {"id": "123456789012", "region": "us-west-2"},
		  "networkConfig": {"VPC_ID": "vpc-0a1b2c3d"}}`,
		KindMissingField, "targetSubnets must also be specified")
	if err.Field != "networkConfig.TARGET_SUBNETS" {
		t.Fatalf("unexpected field tag: %q", err.Field)
	}
}

func TestLoadTargetSubnetsMustBeArray(t *testing.T) {
	loadExpectingError(t,
		`{"projectName": "p", "account": {"id": "123456789012", "region": "us-west-2"},
		  "networkConfig": {"VPC_ID": "vpc-0a1b2c3d", "TARGET_SUBNETS": "subnet-1"}}`,
		KindTypeMismatch, "must be an array")
}

func TestLoadNetworkConfigRoundTrip(t *testing.T) {
	cfg, err := Load(writeDeployment(t,
		`{"projectName": "p", "account": {"id": "123456789012", "region": "us-west-2"},
		  "networkConfig": {
		    "VPC_NAME": "imagery-vpc",
		    "VPC_ID": "vpc-0a1b2c3d4e5f60718",
		    "TARGET_SUBNETS": ["subnet-b", "subnet-a", "subnet-c"],
		    "SECURITY_GROUP_ID": "sg-0123abcd"
		  }}`))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Network == nil {
		t.Fatalf("expected network config")
	}
	if cfg.Network.VPCID != "vpc-0a1b2c3d4e5f60718" {
		t.Fatalf("unexpected VPC ID: %q", cfg.Network.VPCID)
	}
	want := []string{"subnet-b", "subnet-a", "subnet-c"}
	if !reflect.DeepEqual(cfg.Network.TargetSubnets, want) {
		t.Fatalf("expected subnets %v in order, got %v", want, cfg.Network.TargetSubnets)
	}
	if cfg.Network.VPCName != "imagery-vpc" || cfg.Network.SecurityGroupID != "sg-0123abcd" {
		t.Fatalf("unexpected network fields: %+v", cfg.Network)
	}
}

func TestLoadEmptyNetworkConfigIsNotAbsent(t *testing.T) {
	cfg, err := Load(writeDeployment(t,
		`{"projectName": "p", "account": {"id": "123456789012", "region": "us-west-2"}, "networkConfig": {}}`))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Network == nil {
		t.Fatalf("expected empty network override to be present, not absent")
	}
}

func TestLoadPassthroughBlocksVerbatim(t *testing.T) {
	cfg, err := Load(writeDeployment(t,
		`{"projectName": "p", "account": {"id": "123456789012", "region": "us-west-2"},
		  "dataplaneConfig": {"BUILD_FROM_SOURCE": true, "LAMBDA_MEMORY_SIZE": 8192, "nested": {"a": [1, 2]}},
		  "integrationTestConfig": {"TEST_IMAGERY_PREFIX": "integ/"}}`))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	wantDataplane := map[string]any{
		"BUILD_FROM_SOURCE": true,
		"LAMBDA_MEMORY_SIZE": float64(8192),
		"nested":            map[string]any{"a": []any{float64(1), float64(2)}},
	}
	if !reflect.DeepEqual(cfg.Dataplane, wantDataplane) {
		t.Fatalf("dataplane block not stored verbatim: %#v", cfg.Dataplane)
	}
	if !reflect.DeepEqual(cfg.IntegrationTest, map[string]any{"TEST_IMAGERY_PREFIX": "integ/"}) {
		t.Fatalf("integration block not stored verbatim: %#v", cfg.IntegrationTest)
	}

	loadExpectingError(t,
		`{"projectName": "p", "account": {"id": "123456789012", "region": "us-west-2"}, "dataplaneConfig": []}`,
		KindTypeMismatch, "dataplaneConfig must be an object")
}

func TestLoadDeployIntegrationTestsFlag(t *testing.T) {
	cfg, err := Load(writeDeployment(t,
		`{"projectName": "p", "account": {"id": "123456789012", "region": "us-west-2"}, "deployIntegrationTests": true}`))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DeployIntegrationTests == nil || !*cfg.DeployIntegrationTests {
		t.Fatalf("expected explicit true flag, got %v", cfg.DeployIntegrationTests)
	}

	loadExpectingError(t,
		`{"projectName": "p", "account": {"id": "123456789012", "region": "us-west-2"}, "deployIntegrationTests": "yes"}`,
		KindTypeMismatch, "deployIntegrationTests must be a boolean")
}

func TestLoadTrimsValidatedStrings(t *testing.T) {
	cfg, err := Load(writeDeployment(t,
		`{"projectName": "  test-project  ",
		  "account": {"id": "  123456789012  ", "region": "  us-west-2  "},
		  "networkConfig": {"VPC_ID": "  vpc-0a1b2c3d  ", "TARGET_SUBNETS": [], "VPC_NAME": " main "}}`))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ProjectName != "test-project" {
		t.Fatalf("expected trimmed project name, got %q", cfg.ProjectName)
	}
	if cfg.Account.ID != "123456789012" || cfg.Account.Region != "us-west-2" {
		t.Fatalf("expected trimmed account fields: %+v", cfg.Account)
	}
	if cfg.Network.VPCID != "vpc-0a1b2c3d" || cfg.Network.VPCName != "main" {
		t.Fatalf("expected trimmed network fields: %+v", cfg.Network)
	}
	if cfg.Network.TargetSubnets == nil || len(cfg.Network.TargetSubnets) != 0 {
		t.Fatalf("expected empty subnet list preserved: %#v", cfg.Network.TargetSubnets)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	path := writeDeployment(t,
		`{"projectName": "p", "account": {"id": "123456789012", "region": "us-west-2"},
		  "dataplaneConfig": {"LAMBDA_TIMEOUT": 900}}`)
	first, err := Load(path)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected deep-equal results across loads")
	}
}

func TestLoaderAnnouncesOnce(t *testing.T) {
	path := writeDeployment(t, minimalConfig)
	var out bytes.Buffer
	loader := &Loader{Out: &out}

	if _, err := loader.Load(path); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if _, err := loader.Load(path); err != nil {
		t.Fatalf("second load: %v", err)
	}

	if count := strings.Count(out.String(), "Loaded deployment configuration"); count != 1 {
		t.Fatalf("expected exactly one announcement, got %d: %q", count, out.String())
	}
}

func TestLoaderDoesNotAnnounceFailures(t *testing.T) {
	var out bytes.Buffer
	loader := &Loader{Out: &out}
	if _, err := loader.Load(filepath.Join(t.TempDir(), "deployment.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output on failure, got %q", out.String())
	}

	path := writeDeployment(t, minimalConfig)
	if _, err := loader.Load(path); err != nil {
		t.Fatalf("load after failure: %v", err)
	}
	if count := strings.Count(out.String(), "Loaded deployment configuration"); count != 1 {
		t.Fatalf("expected announcement after first success, got %q", out.String())
	}
}
