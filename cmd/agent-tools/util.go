package main

import (
	"encoding/json"
	"fmt"
	"os"

	// Packages
	agenttools "github.com/mutablelogic/go-agent-tools"
	schema "github.com/mutablelogic/go-agent-tools/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// readTools decodes a JSON file of tool definitions
func readTools(path string) ([]schema.ToolDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tools []schema.ToolDefinition
	if err := json.Unmarshal(data, &tools); err != nil {
		return nil, agenttools.ErrBadParameter.Withf("%s: %v", path, err)
	}
	return tools, nil
}

// writeJSON writes the value as indented JSON to the given file, or to
// stdout when the path is empty
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
