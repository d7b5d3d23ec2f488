// Where: internal/schema/overrides.go
// What: YAML override merging for synth.
// Why: Let operators layer ad-hoc dataplane overrides over deployment.json
//      without editing the checked-in file.
package schema

import (
	"encoding/json"
	"fmt"

	"sigs.k8s.io/yaml"
)

// MergeOverrides applies a YAML overrides document on top of a pass-through
// block. Top-level keys in the overrides win; nested objects are merged
// shallowly (one level), matching how the dataplane consumes them.
func MergeOverrides(base map[string]any, yamlPayload []byte) (map[string]any, error) {
	jsonPayload, err := yaml.YAMLToJSON(yamlPayload)
	if err != nil {
		return nil, fmt.Errorf("convert overrides to json: %w", err)
	}
	var overrides map[string]any
	if err := json.Unmarshal(jsonPayload, &overrides); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}

	merged := make(map[string]any, len(base)+len(overrides))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range overrides {
		baseChild, baseOK := merged[key].(map[string]any)
		overrideChild, overrideOK := value.(map[string]any)
		if baseOK && overrideOK {
			child := make(map[string]any, len(baseChild)+len(overrideChild))
			for k, v := range baseChild {
				child[k] = v
			}
			for k, v := range overrideChild {
				child[k] = v
			}
			merged[key] = child
			continue
		}
		merged[key] = value
	}
	return merged, nil
}
