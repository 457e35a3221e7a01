package schema

import (
	"encoding/json"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// GenerationReport describes an operation which could not be mapped to a
// tool. Reports are per-operation and never abort a batch.
type GenerationReport struct {
	Path   string `json:"path"`
	Method string `json:"method"`
	Reason string `json:"reason"`
}

// FailedTool is a tool definition which could not be repaired, together
// with a human-readable reason.
type FailedTool struct {
	Tool   ToolDefinition `json:"tool"`
	Reason string         `json:"reason"`
}

// GenerateRequest represents a request to generate tools from an OpenAPI
// document. Exactly one of URL and Spec should be set.
type GenerateRequest struct {
	URL      string          `json:"url,omitempty" help:"URL of the OpenAPI document"`
	Spec     json.RawMessage `json:"spec,omitempty" help:"Inline OpenAPI document"`
	BaseURL  string          `json:"base_url,omitempty" help:"Base URL for resolving operation paths"`
	Validate bool            `json:"validate,omitempty" help:"Validate and fix the generated tools"`
}

// GenerateResponse represents a response containing generated tools and
// any per-operation generation reports.
type GenerateResponse struct {
	Count   uint               `json:"count"`
	Body    []ToolDefinition   `json:"body,omitzero"`
	Skipped []GenerationReport `json:"skipped,omitzero"`
	Failed  []FailedTool       `json:"failed,omitzero"`
}

// ValidateResponse represents a response containing fixed and failed
// tools after validation.
type ValidateResponse struct {
	Count  uint             `json:"count"`
	Body   []ToolDefinition `json:"body,omitzero"`
	Failed []FailedTool     `json:"failed,omitzero"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r GenerationReport) String() string {
	return Stringify(r)
}

func (r FailedTool) String() string {
	return Stringify(r)
}

func (r GenerateRequest) String() string {
	return Stringify(r)
}

func (r GenerateResponse) String() string {
	return Stringify(r)
}

func (r ValidateResponse) String() string {
	return Stringify(r)
}
