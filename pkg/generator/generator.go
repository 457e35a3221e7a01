/*
generator maps OpenAPI operations to tool definitions. The mapping is a
pure transformation: given the same document and base URL the generated
tool list is identical, in document order, with one tool or one
generation report per operation.
*/
package generator

import (
	"fmt"
	"sort"
	"strings"

	// Packages
	agenttools "github.com/mutablelogic/go-agent-tools"
	openapi "github.com/mutablelogic/go-agent-tools/pkg/openapi"
	schema "github.com/mutablelogic/go-agent-tools/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Maximum depth when chasing schema references, which also guards
	// against reference cycles
	maxRefDepth = 8

	// Appended to the description of schemas simplified from combinators
	simplifiedNote = "(simplified from multiple alternatives)"

	// Appended to the tool description for multipart request bodies
	multipartNote = "Form data for file upload; file contents are base64-encoded."
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Generate maps each operation in the document to a tool definition,
// bound to the given base URL. Operations which cannot be mapped are
// skipped and reported; they never abort the batch.
func Generate(doc *openapi.Document, baseURL string) ([]schema.ToolDefinition, []schema.GenerationReport, error) {
	if doc == nil {
		return nil, nil, agenttools.ErrBadParameter.With("nil document")
	}

	var tools []schema.ToolDefinition
	var reports []schema.GenerationReport
	names := make(map[string]bool)

	for _, entry := range doc.Paths {
		for _, bound := range entry.Item.Operations() {
			tool, err := generateTool(doc, entry.Path, bound.Method, bound.Operation, baseURL)
			if err != nil {
				reports = append(reports, schema.GenerationReport{
					Path:   entry.Path,
					Method: bound.Method,
					Reason: err.Error(),
				})
				continue
			}
			if names[tool.Name] {
				reports = append(reports, schema.GenerationReport{
					Path:   entry.Path,
					Method: bound.Method,
					Reason: fmt.Sprintf("duplicate tool name %q", tool.Name),
				})
				continue
			}
			names[tool.Name] = true
			tools = append(tools, *tool)
		}
	}

	return tools, reports, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func generateTool(doc *openapi.Document, path, method string, op *openapi.Operation, baseURL string) (*schema.ToolDefinition, error) {
	input, note, err := flattenInput(doc, op)
	if err != nil {
		return nil, err
	}

	description := describe(op, method, path)
	if note != "" {
		description = strings.TrimSpace(description + " " + note)
	}

	return &schema.ToolDefinition{
		Name:        toolName(op, method, path),
		Description: description,
		InputSchema: input,
		Method:      method,
		URL:         joinURL(baseURL, path),
	}, nil
}

// flattenInput translates operation parameters and the request body
// schema into a single object schema with a properties mapping and a
// required set. Returns an additional note to append to the tool
// description for multipart bodies.
func flattenInput(doc *openapi.Document, op *openapi.Operation) (schema.JSONSchema, string, error) {
	props := make(map[string]any)
	var required []string

	for _, param := range op.Parameters {
		// Header and cookie parameters are transport concerns, not
		// model inputs
		if param.In == "header" || param.In == "cookie" {
			continue
		}
		if param.Name == "" {
			return nil, "", agenttools.ErrBadParameter.With("parameter without a name")
		}
		if _, exists := props[param.Name]; exists {
			return nil, "", agenttools.ErrConflict.Withf("duplicate parameter %q", param.Name)
		}

		ps, err := parameterSchema(doc, param)
		if err != nil {
			return nil, "", err
		}
		props[param.Name] = ps
		if param.Required {
			required = append(required, param.Name)
		}
	}

	// Merge the request body schema
	note, err := mergeRequestBody(doc, op.RequestBody, props, &required)
	if err != nil {
		return nil, "", err
	}

	input := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if required = dedupe(required); len(required) > 0 {
		input["required"] = required
	}

	data, err := schema.JSONSchemaFrom(input)
	if err != nil {
		return nil, "", err
	}
	return data, note, nil
}

func parameterSchema(doc *openapi.Document, param openapi.Parameter) (map[string]any, error) {
	result := map[string]any{"type": "string"}
	if !param.Schema.IsZero() {
		m, err := param.Schema.Map()
		if err != nil {
			return nil, agenttools.ErrBadParameter.Withf("parameter %q: %v", param.Name, err)
		}
		if m != nil {
			if result, err = resolveSchema(doc, m, 0); err != nil {
				return nil, fmt.Errorf("parameter %q: %w", param.Name, err)
			}
		}
	}
	if _, ok := result["description"]; !ok && param.Description != "" {
		result["description"] = param.Description
	}
	return result, nil
}

// mergeRequestBody flattens an application/json (preferred) or
// multipart/form-data request body into the top-level properties.
// Object schemas have their properties merged in; any other schema
// becomes a "body" property.
func mergeRequestBody(doc *openapi.Document, body *openapi.RequestBody, props map[string]any, required *[]string) (string, error) {
	if body == nil || len(body.Content) == 0 {
		return "", nil
	}

	var raw schema.JSONSchema
	var note string
	if mt, ok := body.Content["application/json"]; ok && !mt.Schema.IsZero() {
		raw = mt.Schema
	} else if mt, ok := body.Content["multipart/form-data"]; ok && !mt.Schema.IsZero() {
		raw = mt.Schema
		note = multipartNote
	}
	if raw == nil {
		return "", nil
	}

	m, err := raw.Map()
	if err != nil {
		return "", agenttools.ErrBadParameter.Withf("request body schema: %v", err)
	}
	resolved, err := resolveSchema(doc, m, 0)
	if err != nil {
		return "", fmt.Errorf("request body: %w", err)
	}

	if bodyProps, ok := resolved["properties"].(map[string]any); ok {
		// Merge object properties in sorted order so collision reports
		// are deterministic
		names := make([]string, 0, len(bodyProps))
		for name := range bodyProps {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, exists := props[name]; exists {
				return "", agenttools.ErrConflict.Withf("request body property %q collides with a parameter", name)
			}
			props[name] = bodyProps[name]
		}
		if bodyRequired, ok := resolved["required"].([]any); ok {
			for _, r := range bodyRequired {
				if name, ok := r.(string); ok {
					*required = append(*required, name)
				}
			}
		}
	} else {
		if _, exists := props["body"]; exists {
			return "", agenttools.ErrConflict.With("request body collides with a parameter named \"body\"")
		}
		props["body"] = resolved
		if body.Required {
			*required = append(*required, "body")
		}
	}

	return note, nil
}

// resolveSchema returns a copy of the schema with local references
// resolved against the document and combinators simplified to their
// first alternative. The depth argument guards against reference
// cycles.
func resolveSchema(doc *openapi.Document, m map[string]any, depth int) (map[string]any, error) {
	if depth > maxRefDepth {
		return nil, agenttools.ErrUnsupportedSchema.With("reference depth exceeded")
	}

	// References replace the schema entirely
	if ref, ok := m["$ref"].(string); ok {
		resolved, err := doc.ResolveRef(ref)
		if err != nil {
			return nil, err
		}
		rm, err := resolved.Map()
		if err != nil || rm == nil {
			return nil, agenttools.ErrBadParameter.Withf("reference %q is not a schema object", ref)
		}
		return resolveSchema(doc, rm, depth+1)
	}

	// Combinators are simplified to their first alternative, with a
	// note appended to the description
	for _, key := range []string{"allOf", "anyOf", "oneOf"} {
		alts, ok := m[key].([]any)
		if !ok {
			continue
		}
		if len(alts) == 0 {
			return nil, agenttools.ErrUnsupportedSchema.Withf("empty %s", key)
		}
		first, ok := alts[0].(map[string]any)
		if !ok {
			return nil, agenttools.ErrUnsupportedSchema.Withf("%s alternative is not a schema object", key)
		}
		resolved, err := resolveSchema(doc, first, depth+1)
		if err != nil {
			return nil, err
		}

		result := make(map[string]any, len(resolved)+len(m))
		for k, v := range resolved {
			result[k] = v
		}
		for k, v := range m {
			if k == key {
				continue
			}
			if _, exists := result[k]; !exists {
				result[k] = v
			}
		}
		if len(alts) > 1 {
			if desc, ok := result["description"].(string); ok && desc != "" {
				result["description"] = desc + " " + simplifiedNote
			} else {
				result["description"] = simplifiedNote
			}
		}
		return result, nil
	}

	// Plain schema: copy, resolving nested schemas
	result := make(map[string]any, len(m))
	for k, v := range m {
		switch k {
		case "properties":
			nested, ok := v.(map[string]any)
			if !ok {
				return nil, agenttools.ErrBadParameter.With("properties must be an object")
			}
			rp := make(map[string]any, len(nested))
			for name, ps := range nested {
				psm, ok := ps.(map[string]any)
				if !ok {
					rp[name] = ps
					continue
				}
				r, err := resolveSchema(doc, psm, depth)
				if err != nil {
					return nil, err
				}
				rp[name] = r
			}
			result[k] = rp
		case "items", "additionalProperties":
			if vm, ok := v.(map[string]any); ok {
				r, err := resolveSchema(doc, vm, depth)
				if err != nil {
					return nil, err
				}
				result[k] = r
			} else {
				result[k] = v
			}
		default:
			result[k] = v
		}
	}

	// Default the type when the structure implies it
	if _, ok := result["type"]; !ok {
		if _, ok := result["properties"]; ok {
			result["type"] = "object"
		} else if _, ok := result["items"]; ok {
			result["type"] = "array"
		}
	}

	return result, nil
}

func toolName(op *openapi.Operation, method, path string) string {
	if op.OperationId != "" {
		if name := schema.NormalizeName(op.OperationId); name != "" {
			return name
		}
	}
	endpoint := strings.NewReplacer("/", "_", "{", "", "}", "").Replace(strings.Trim(path, "/"))
	name := "api_call_" + strings.ToLower(method)
	if endpoint != "" {
		name += "_" + endpoint
	}
	return schema.NormalizeName(name)
}

func describe(op *openapi.Operation, method, path string) string {
	if op.Description != "" {
		return op.Description
	}
	if op.Summary != "" {
		return op.Summary
	}
	if response, ok := op.Responses["200"]; ok && response.Description != "" {
		return response.Description
	}
	return fmt.Sprintf("Call %s %s", method, path)
}

func joinURL(base, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if base == "" {
		return path
	}
	return strings.TrimRight(base, "/") + path
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := values[:0]
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
