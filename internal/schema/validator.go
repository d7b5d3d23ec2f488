// Where: internal/schema/validator.go
// What: Schema lint for deployment pass-through blocks.
// Why: The loader stores dataplaneConfig/integrationTestConfig verbatim;
//      shape checks belong here, where synth consumes them.
package schema

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed dataplane.schema.json integration.schema.json
var schemaFS embed.FS

var (
	schemaOnce sync.Once
	schemaErr  error
	compiled   map[string]*jsonschema.Schema
)

// ValidateDataplane checks a dataplaneConfig block against the dataplane schema.
// A nil block is valid (the override is optional).
func ValidateDataplane(block map[string]any) error {
	return validate("dataplane.schema.json", "dataplaneConfig", block)
}

// ValidateIntegration checks an integrationTestConfig block against its schema.
func ValidateIntegration(block map[string]any) error {
	return validate("integration.schema.json", "integrationTestConfig", block)
}

func validate(name, field string, block map[string]any) error {
	if block == nil {
		return nil
	}
	sch, err := loadSchema(name)
	if err != nil {
		return err
	}
	if err := sch.Validate(normalize(block)); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

func loadSchema(name string) (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiled = map[string]*jsonschema.Schema{}
		for _, file := range []string{"dataplane.schema.json", "integration.schema.json"} {
			payload, err := schemaFS.ReadFile(file)
			if err != nil {
				schemaErr = err
				return
			}
			compiler := jsonschema.NewCompiler()
			if err := compiler.AddResource(file, bytes.NewReader(payload)); err != nil {
				schemaErr = err
				return
			}
			sch, err := compiler.Compile(file)
			if err != nil {
				schemaErr = err
				return
			}
			compiled[file] = sch
		}
	})
	if schemaErr != nil {
		return nil, schemaErr
	}
	sch, ok := compiled[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %s", name)
	}
	return sch, nil
}

// normalize converts whole-number floats back to integers so documents decoded
// with encoding/json pass "type": "integer" checks.
func normalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, entry := range typed {
			out[key] = normalize(entry)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, entry := range typed {
			out[i] = normalize(entry)
		}
		return out
	case float64:
		if typed == float64(int64(typed)) {
			return int64(typed)
		}
		return typed
	default:
		return value
	}
}
