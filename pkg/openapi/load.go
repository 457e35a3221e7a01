package openapi

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	// Packages
	agenttools "github.com/mutablelogic/go-agent-tools"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Format indicates the serialization format of a document.
type Format int

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

// Matches a top-level "key: value" line, a strong hint of YAML content.
var yamlKey = regexp.MustCompile(`(?m)^[a-zA-Z0-9_-]+:(\s|$)`)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Parse decodes an OpenAPI document from raw bytes. With FormatAuto the
// format is sniffed from the content; JSON parsing falls back to YAML
// when both fail to give a better error for ambiguous content.
func Parse(data []byte, format Format) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, agenttools.ErrBadParameter.With("empty document")
	}
	if format == FormatAuto {
		format = detectFormat(data)
	}

	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, agenttools.ErrBadParameter.Withf("invalid YAML: %v", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			// Some YAML documents pass the JSON sniff, so try YAML before
			// giving up
			if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
				return nil, agenttools.ErrBadParameter.Withf("failed to parse as JSON or YAML: %v", err)
			}
		}
	}

	if doc.Version() == "" && len(doc.Paths) == 0 {
		return nil, agenttools.ErrBadParameter.With("not an OpenAPI document")
	}

	return &doc, nil
}

// Read decodes an OpenAPI document from a reader, sniffing the format.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, FormatAuto)
}

// ReadFile decodes an OpenAPI document from a file. The file extension
// takes precedence over content sniffing.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, FormatForPath(path))
}

// FormatForPath returns the format implied by a file extension, or
// FormatAuto when the extension is not recognized.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatAuto
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func detectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	if bytes.HasPrefix(trimmed, []byte("---")) {
		return FormatYAML
	}
	head := trimmed
	if len(head) > 1000 {
		head = head[:1000]
	}
	if bytes.Contains(head, []byte("openapi:")) || bytes.Contains(head, []byte("swagger:")) {
		return FormatYAML
	}
	if yamlKey.Match(trimmed) {
		return FormatYAML
	}
	return FormatJSON
}
