package analysis

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema describes the analysis record the prompt asks for. Unknown keys
// are allowed; they are dropped during projection.
const recordSchema = `{
  "type": "object",
  "properties": {
    "summary":            {"type": "string"},
    "key_terms":          {"$ref": "#/$defs/list"},
    "main_clauses":       {"$ref": "#/$defs/list"},
    "risks":              {"$ref": "#/$defs/list"},
    "recommendations":    {"$ref": "#/$defs/list"},
    "parties":            {"$ref": "#/$defs/list"},
    "jurisdiction":       {"type": "string"},
    "obligations":        {"$ref": "#/$defs/list"},
    "critical_dates":     {"$ref": "#/$defs/list"},
    "missing_or_unusual": {"$ref": "#/$defs/list"},
    "compliance_issues":  {"$ref": "#/$defs/list"},
    "next_steps":         {"$ref": "#/$defs/list"}
  },
  "$defs": {
    "list": {"type": "array", "items": {"type": "string"}}
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("analysis.json", strings.NewReader(recordSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("analysis.json")
})

// CheckShape reports how a decoded record deviates from the expected field
// shapes. Deviations are not fatal: projection coerces them.
func CheckShape(decoded map[string]any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(decoded); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
