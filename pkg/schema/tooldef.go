package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolDefinition represents a model-agnostic tool definition. The name,
// description and input schema are what an agent is shown; the method and
// url carry enough routing metadata for a caller to invoke the underlying
// HTTP operation.
type ToolDefinition struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	InputSchema JSONSchema `json:"input_schema,omitempty"`

	// Invocation binding
	Method string `json:"method,omitempty"`
	URL    string `json:"url,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Copy returns a deep copy of the tool definition, so that repairs can be
// applied without mutating the original.
func (t ToolDefinition) Copy() ToolDefinition {
	result := t
	if t.InputSchema != nil {
		result.InputSchema = append(JSONSchema(nil), t.InputSchema...)
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t ToolDefinition) String() string {
	return Stringify(t)
}
