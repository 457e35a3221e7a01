/*
validator checks tool definitions and repairs what it can. A tool which
cannot be repaired is returned with the reason it failed, so a bad tool
never aborts the batch. Fixing is idempotent: running a fixed tool
through the validator again applies no further repairs.
*/
package validator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	agenttools "github.com/mutablelogic/go-agent-tools"
	schema "github.com/mutablelogic/go-agent-tools/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Fix validates each tool in turn, repairing what it can. Tools which
// cannot be repaired are returned separately with the reason they
// failed. The input slice is never modified.
func Fix(tools []schema.ToolDefinition) ([]schema.ToolDefinition, []schema.FailedTool) {
	var fixed []schema.ToolDefinition
	var failed []schema.FailedTool
	for _, tool := range tools {
		result, _, err := FixTool(tool)
		if err != nil {
			failed = append(failed, schema.FailedTool{
				Tool:   tool.Copy(),
				Reason: err.Error(),
			})
			continue
		}
		fixed = append(fixed, *result)
	}
	return fixed, failed
}

// FixTool returns a repaired copy of the tool and the list of repairs
// applied, or an error when the tool cannot be repaired.
func FixTool(tool schema.ToolDefinition) (*schema.ToolDefinition, []string, error) {
	fixed := tool.Copy()
	var repairs []string

	// Name
	if tool.Name == "" {
		return nil, nil, agenttools.ErrBadParameter.With("missing tool name")
	}
	if !schema.IsValidName(tool.Name) {
		name := schema.NormalizeName(tool.Name)
		if name == "" {
			return nil, nil, agenttools.ErrBadParameter.Withf("cannot repair tool name %q", tool.Name)
		}
		fixed.Name = name
		repairs = append(repairs, fmt.Sprintf("renamed tool to %q", name))
	}

	// Description
	if tool.Description == "" {
		fixed.Description = "Tool to " + strings.NewReplacer("_", " ", "-", " ").Replace(fixed.Name)
		repairs = append(repairs, "added a description")
	}

	// Input schema
	input, inputRepairs, err := fixInput(tool.InputSchema)
	if err != nil {
		return nil, nil, err
	}
	repairs = append(repairs, inputRepairs...)

	data, err := schema.JSONSchemaFrom(input)
	if err != nil {
		return nil, nil, agenttools.ErrBadParameter.Withf("input schema: %v", err)
	}
	if err := resolveCheck(data); err != nil {
		return nil, nil, err
	}
	fixed.InputSchema = data

	return &fixed, repairs, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// fixInput repairs the top-level input schema, which must describe an
// object, then walks the nested schemas.
func fixInput(input schema.JSONSchema) (map[string]any, []string, error) {
	var repairs []string

	root := make(map[string]any)
	if !input.IsZero() {
		m, err := input.Map()
		if err != nil {
			return nil, nil, agenttools.ErrBadParameter.Withf("invalid input schema: %v", err)
		}
		if m != nil {
			root = m
		} else {
			repairs = append(repairs, "replaced empty input schema with an object schema")
		}
	} else {
		repairs = append(repairs, "replaced empty input schema with an object schema")
	}

	// A reference or combinator at the root is repaired before the
	// object shape is checked, so an unsupported construct fails the
	// tool rather than surviving the shape repairs
	if root["$ref"] != nil || root["anyOf"] != nil || root["oneOf"] != nil || root["allOf"] != nil {
		fixed, r, err := fixSchema(root, "input schema")
		if err != nil {
			return nil, nil, err
		}
		root = fixed
		repairs = append(repairs, r...)
	}

	// The top-level schema must be an object
	switch typ := root["type"].(type) {
	case nil:
		root["type"] = "object"
		if len(root) > 1 {
			repairs = append(repairs, "defaulted input schema type to object")
		}
	case string:
		if typ != "object" {
			return nil, nil, agenttools.ErrUnsupportedSchema.Withf("input schema type %q is not an object", typ)
		}
	case []any:
		found := false
		for _, t := range typ {
			if t == "object" {
				found = true
				break
			}
		}
		if !found {
			return nil, nil, agenttools.ErrUnsupportedSchema.With("input schema type does not include object")
		}
		root["type"] = "object"
		repairs = append(repairs, "narrowed input schema type to object")
	default:
		return nil, nil, agenttools.ErrUnsupportedSchema.With("input schema type is not a string")
	}

	props, ok := root["properties"].(map[string]any)
	if !ok {
		if root["properties"] != nil {
			return nil, nil, agenttools.ErrUnsupportedSchema.With("input schema properties is not an object")
		}
		props = make(map[string]any)
		root["properties"] = props
		repairs = append(repairs, "added empty properties")
	}

	// Walk properties in sorted order so repairs are deterministic
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ps, ok := props[name].(map[string]any)
		if !ok {
			continue
		}
		fixed, r, err := fixSchema(ps, "properties."+name)
		if err != nil {
			return nil, nil, err
		}
		props[name] = fixed
		repairs = append(repairs, r...)
	}

	return root, repairs, nil
}

// fixSchema repairs a nested schema. References cannot be resolved at
// this point and fail the tool; combinators are collapsed where a
// single alternative or a nullable union allows it.
func fixSchema(m map[string]any, path string) (map[string]any, []string, error) {
	var repairs []string

	// References are unresolvable in a standalone tool schema
	if ref, ok := m["$ref"].(string); ok {
		return nil, nil, agenttools.ErrUnsupportedSchema.Withf("unresolved reference %q at %s", ref, path)
	}

	// Combinators
	for _, key := range []string{"anyOf", "oneOf", "allOf"} {
		alts, ok := m[key].([]any)
		if !ok {
			continue
		}

		// A single alternative is inlined
		if len(alts) == 1 {
			if alt, ok := alts[0].(map[string]any); ok {
				merged := merge(alt, m, key)
				repairs = append(repairs, fmt.Sprintf("inlined single-alternative %s at %s", key, path))
				fixed, r, err := fixSchema(merged, path)
				return fixed, append(repairs, r...), err
			}
			return nil, nil, agenttools.ErrUnsupportedSchema.Withf("%s alternative at %s is not a schema object", key, path)
		}

		// A nullable union collapses to a type list
		if key != "allOf" && len(alts) == 2 {
			if value := nullableUnion(alts); value != nil {
				merged := merge(value, m, key)
				if ref, ok := merged["$ref"].(string); ok {
					// An unresolvable branch degrades to a string
					delete(merged, "$ref")
					merged["type"] = []any{"string", "null"}
					repairs = append(repairs, fmt.Sprintf("replaced nullable reference %q at %s with a string", ref, path))
				} else {
					if typ, ok := merged["type"].(string); ok {
						merged["type"] = []any{typ, "null"}
					} else if !structural(merged) {
						// A branch with no structural keys defaults to a string
						merged["type"] = []any{"string", "null"}
					}
					repairs = append(repairs, fmt.Sprintf("collapsed nullable %s at %s", key, path))
				}
				fixed, r, err := fixSchema(merged, path)
				return fixed, append(repairs, r...), err
			}
		}

		return nil, nil, agenttools.ErrUnsupportedSchema.Withf("unsupported %s with %d alternatives at %s", key, len(alts), path)
	}

	// Nested schemas
	for _, key := range []string{"items", "additionalProperties"} {
		if nested, ok := m[key].(map[string]any); ok {
			fixed, r, err := fixSchema(nested, path+"."+key)
			if err != nil {
				return nil, nil, err
			}
			m[key] = fixed
			repairs = append(repairs, r...)
		}
	}
	if props, ok := m["properties"].(map[string]any); ok {
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ps, ok := props[name].(map[string]any)
			if !ok {
				continue
			}
			fixed, r, err := fixSchema(ps, path+".properties."+name)
			if err != nil {
				return nil, nil, err
			}
			props[name] = fixed
			repairs = append(repairs, r...)
		}
	}

	return m, repairs, nil
}

// merge combines an alternative with its siblings, dropping the
// combinator key. Sibling keys never override the alternative.
func merge(alt, parent map[string]any, key string) map[string]any {
	result := make(map[string]any, len(alt)+len(parent))
	for k, v := range alt {
		result[k] = v
	}
	for k, v := range parent {
		if k == key {
			continue
		}
		if _, exists := result[k]; !exists {
			result[k] = v
		}
	}
	return result
}

// nullableUnion returns the non-null alternative when exactly one of
// the two alternatives is {"type": "null"}, or nil otherwise.
func nullableUnion(alts []any) map[string]any {
	a, aok := alts[0].(map[string]any)
	b, bok := alts[1].(map[string]any)
	if !aok || !bok {
		return nil
	}
	if isNull(a) && !isNull(b) {
		return b
	}
	if isNull(b) && !isNull(a) {
		return a
	}
	return nil
}

func isNull(m map[string]any) bool {
	typ, ok := m["type"].(string)
	return ok && typ == "null"
}

// structural reports whether a schema constrains its value by shape,
// so a missing type cannot be assumed to be a string.
func structural(m map[string]any) bool {
	for _, key := range []string{"properties", "required", "items", "additionalProperties", "enum"} {
		if _, exists := m[key]; exists {
			return true
		}
	}
	return false
}

// resolveCheck confirms the repaired schema is a valid JSON schema by
// resolving it.
func resolveCheck(data schema.JSONSchema) error {
	var js jsonschema.Schema
	if err := json.Unmarshal(data.Bytes(), &js); err != nil {
		return agenttools.ErrUnsupportedSchema.Withf("input schema: %v", err)
	}
	if _, err := js.Resolve(nil); err != nil {
		return agenttools.ErrUnsupportedSchema.Withf("input schema: %v", err)
	}
	return nil
}
