// Where: internal/deployment/loader.go
// What: deployment.json reader and validator.
// Why: Turn an operator-edited JSON file into a typed config, or fail with a
//      message that makes the fix self-evident.
package deployment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	accountIDPattern = regexp.MustCompile(`^[0-9]{12}$`)
	regionPattern    = regexp.MustCompile(
		`^(us|eu|ap|ca|sa|af|me|il|cn|gov)-(east|west|north|south|central|southeast|northeast|southwest|northwest)-[1-9][0-9]*$`)
	vpcIDPattern = regexp.MustCompile(`^vpc-([0-9a-f]{8}|[0-9a-f]{17})$`)
)

// Load reads, parses, and validates the deployment configuration at path.
// It is a pure function: no caching, no environment access, and every call
// re-reads the file. Validation short-circuits on the first failure, and all
// failures are *Error values carrying the failing field.
func Load(path string) (*DeploymentConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errNotFound(path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var parsed any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, errInvalidJSON(err.Error())
	}
	doc, ok := parsed.(map[string]any)
	if !ok {
		return nil, errInvalidJSON("top-level value must be an object")
	}

	cfg := &DeploymentConfig{}

	name, err := projectName(doc)
	if err != nil {
		return nil, err
	}
	cfg.ProjectName = name

	account, err := accountConfig(doc)
	if err != nil {
		return nil, err
	}
	cfg.Account = account

	network, err := networkConfig(doc)
	if err != nil {
		return nil, err
	}
	cfg.Network = network

	dataplane, err := passthroughBlock(doc, "dataplaneConfig")
	if err != nil {
		return nil, err
	}
	cfg.Dataplane = dataplane

	integration, err := passthroughBlock(doc, "integrationTestConfig")
	if err != nil {
		return nil, err
	}
	cfg.IntegrationTest = integration

	if value, present := doc["deployIntegrationTests"]; present {
		flag, ok := value.(bool)
		if !ok {
			return nil, errTypeMismatch("deployIntegrationTests", "deployIntegrationTests must be a boolean")
		}
		cfg.DeployIntegrationTests = &flag
	}

	return cfg, nil
}

func projectName(doc map[string]any) (string, error) {
	value, present := doc["projectName"]
	if !present {
		return "", errMissingField("projectName")
	}
	name, ok := value.(string)
	if !ok {
		return "", errTypeMismatch("projectName", "projectName must be a string")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errEmptyField("projectName")
	}
	return name, nil
}

func accountConfig(doc map[string]any) (AccountConfig, error) {
	value, present := doc["account"]
	obj, ok := value.(map[string]any)
	if !present || !ok {
		return AccountConfig{}, errMissingField("account")
	}

	account := AccountConfig{}

	id, ok := stringEntry(obj, "id")
	if !ok {
		return AccountConfig{}, errMissingField("account.id")
	}
	if !accountIDPattern.MatchString(id) {
		return AccountConfig{}, errInvalidFormat("account.id",
			fmt.Sprintf("Invalid AWS account ID format: %q", id))
	}
	account.ID = id

	region, ok := stringEntry(obj, "region")
	if !ok {
		return AccountConfig{}, errMissingField("account.region")
	}
	if !regionPattern.MatchString(region) {
		return AccountConfig{}, errInvalidFormat("account.region",
			fmt.Sprintf("Invalid AWS region format: %q", region))
	}
	account.Region = region

	prodLike, err := boolEntry(obj, "prodLike")
	if err != nil {
		return AccountConfig{}, err
	}
	account.ProdLike = prodLike

	isADC, err := boolEntry(obj, "isAdc")
	if err != nil {
		return AccountConfig{}, err
	}
	account.IsADC = isADC

	return account, nil
}

// boolEntry returns the flag at account.<key>, defaulting to false when absent.
func boolEntry(obj map[string]any, key string) (bool, error) {
	value, present := obj[key]
	if !present {
		return false, nil
	}
	flag, ok := value.(bool)
	if !ok {
		return false, errTypeMismatch("account."+key,
			fmt.Sprintf("account.%s must be a boolean", key))
	}
	return flag, nil
}

func networkConfig(doc map[string]any) (*NetworkConfig, error) {
	value, present := doc["networkConfig"]
	if !present {
		return nil, nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, errTypeMismatch("networkConfig", "networkConfig must be an object")
	}

	network := &NetworkConfig{}

	if raw, present := obj["VPC_ID"]; present {
		id, ok := raw.(string)
		if !ok {
			return nil, errTypeMismatch("networkConfig.VPC_ID", "networkConfig.VPC_ID must be a string")
		}
		id = strings.TrimSpace(id)
		if !vpcIDPattern.MatchString(id) {
			return nil, errInvalidFormat("networkConfig.VPC_ID",
				fmt.Sprintf("Invalid VPC ID format: %q", id))
		}
		network.VPCID = id

		if _, present := obj["TARGET_SUBNETS"]; !present {
			return nil, &Error{
				Kind:    KindMissingField,
				Field:   "networkConfig.TARGET_SUBNETS",
				Message: "Missing required field: networkConfig.TARGET_SUBNETS (targetSubnets must also be specified when VPC_ID is set)",
			}
		}
	}

	if raw, present := obj["TARGET_SUBNETS"]; present {
		elements, ok := raw.([]any)
		if !ok {
			return nil, errTypeMismatch("networkConfig.TARGET_SUBNETS",
				"networkConfig.TARGET_SUBNETS must be an array")
		}
		subnets := make([]string, 0, len(elements))
		for _, element := range elements {
			// Element shape is owned downstream; keep non-strings as printed values.
			if subnet, ok := element.(string); ok {
				subnets = append(subnets, subnet)
			} else {
				subnets = append(subnets, fmt.Sprint(element))
			}
		}
		network.TargetSubnets = subnets
	}

	for field, target := range map[string]*string{
		"VPC_NAME":          &network.VPCName,
		"SECURITY_GROUP_ID": &network.SecurityGroupID,
	} {
		raw, present := obj[field]
		if !present {
			continue
		}
		text, ok := raw.(string)
		if !ok {
			return nil, errTypeMismatch("networkConfig."+field,
				fmt.Sprintf("networkConfig.%s must be a string", field))
		}
		*target = strings.TrimSpace(text)
	}

	return network, nil
}

func passthroughBlock(doc map[string]any, field string) (map[string]any, error) {
	value, present := doc[field]
	if !present {
		return nil, nil
	}
	block, ok := value.(map[string]any)
	if !ok {
		return nil, errTypeMismatch(field, field+" must be an object")
	}
	return block, nil
}

// stringEntry returns the trimmed string at key. The second return is false
// when the key is absent or not a string.
func stringEntry(obj map[string]any, key string) (string, bool) {
	value, present := obj[key]
	if !present {
		return "", false
	}
	text, ok := value.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(text), true
}

func baseName(path string) string {
	if base := filepath.Base(path); base != "." && base != string(filepath.Separator) {
		return base
	}
	return "deployment.json"
}
