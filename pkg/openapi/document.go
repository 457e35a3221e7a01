/*
openapi provides a minimal in-memory representation of an OpenAPI
document: the paths, operations, parameters and schemas needed to
generate tool definitions. It is not a complete rendition of the
OpenAPI specification.
*/
package openapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	// Packages
	agenttools "github.com/mutablelogic/go-agent-tools"
	schema "github.com/mutablelogic/go-agent-tools/pkg/schema"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Document is a parsed OpenAPI (or Swagger) document.
type Document struct {
	OpenAPI    string      `json:"openapi,omitempty" yaml:"openapi,omitempty"`
	Swagger    string      `json:"swagger,omitempty" yaml:"swagger,omitempty"`
	Info       Info        `json:"info,omitempty" yaml:"info,omitempty"`
	Servers    []Server    `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths      Paths       `json:"paths,omitempty" yaml:"paths,omitempty"`
	Components *Components `json:"components,omitempty" yaml:"components,omitempty"`
}

type Info struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
}

type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Paths is an ordered list of path entries. Order is preserved from the
// source document so that generated tools are deterministic.
type Paths []PathEntry

type PathEntry struct {
	Path string
	Item PathItem
}

type PathItem struct {
	Get    *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put    *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post   *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Patch  *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
	Delete *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
}

type Operation struct {
	OperationId string              `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  bool                `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses,omitempty" yaml:"responses,omitempty"`
}

type Parameter struct {
	Name        string            `json:"name" yaml:"name"`
	In          string            `json:"in,omitempty" yaml:"in,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      schema.JSONSchema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

type RequestBody struct {
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool                 `json:"required,omitempty" yaml:"required,omitempty"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type MediaType struct {
	Schema schema.JSONSchema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

type Response struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Components struct {
	Schemas map[string]schema.JSONSchema `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// BoundOperation is an operation together with its HTTP method.
type BoundOperation struct {
	Method    string
	Operation *Operation
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Prefix for local schema references
	refPrefix = "#/components/schemas/"
)

// Methods are iterated in a fixed order so that the generated tool list
// is deterministic regardless of source representation.
var methodOrder = []string{
	http.MethodGet,
	http.MethodPut,
	http.MethodPost,
	http.MethodPatch,
	http.MethodDelete,
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the document's OpenAPI version, or the Swagger version
// for 2.0 documents.
func (d *Document) Version() string {
	if d.OpenAPI != "" {
		return d.OpenAPI
	}
	return d.Swagger
}

// ResolveRef returns the component schema for a local reference of the
// form "#/components/schemas/Name".
func (d *Document) ResolveRef(ref string) (schema.JSONSchema, error) {
	name, ok := strings.CutPrefix(ref, refPrefix)
	if !ok {
		return nil, agenttools.ErrNotFound.Withf("unsupported reference: %q", ref)
	}
	if d.Components != nil {
		if s, exists := d.Components.Schemas[name]; exists {
			return s, nil
		}
	}
	return nil, agenttools.ErrNotFound.Withf("unresolved reference: %q", ref)
}

// Get returns the path item for a path, or nil if the path is not in the
// document.
func (p Paths) Get(path string) *PathItem {
	for i := range p {
		if p[i].Path == path {
			return &p[i].Item
		}
	}
	return nil
}

// Operations returns the operations defined on the path item, in a fixed
// method order.
func (p PathItem) Operations() []BoundOperation {
	result := make([]BoundOperation, 0, len(methodOrder))
	for _, method := range methodOrder {
		var op *Operation
		switch method {
		case http.MethodGet:
			op = p.Get
		case http.MethodPut:
			op = p.Put
		case http.MethodPost:
			op = p.Post
		case http.MethodPatch:
			op = p.Patch
		case http.MethodDelete:
			op = p.Delete
		}
		if op != nil {
			result = append(result, BoundOperation{Method: method, Operation: op})
		}
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// JSON MARSHALLING

func (p Paths) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Path)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		item, err := json.Marshal(entry.Item)
		if err != nil {
			return nil, err
		}
		buf.Write(item)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *Paths) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return agenttools.ErrBadParameter.With("paths must be an object")
	}

	var result Paths
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return agenttools.ErrBadParameter.With("invalid path key")
		}
		var item PathItem
		if err := dec.Decode(&item); err != nil {
			return err
		}
		result = append(result, PathEntry{Path: key, Item: item})
	}

	*p = result
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// YAML UNMARSHALLING

func (p *Paths) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return agenttools.ErrBadParameter.With("paths must be a mapping")
	}

	result := make(Paths, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var entry PathEntry
		if err := node.Content[i].Decode(&entry.Path); err != nil {
			return err
		}
		if err := node.Content[i+1].Decode(&entry.Item); err != nil {
			return err
		}
		result = append(result, entry)
	}

	*p = result
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (d *Document) String() string {
	return schema.Stringify(d)
}
