package openapi_test

import (
	"encoding/json"
	"testing"

	// Packages
	openapi "github.com/mutablelogic/go-agent-tools/pkg/openapi"
	assert "github.com/stretchr/testify/assert"
)

func Test_document_001(t *testing.T) {
	assert := assert.New(t)

	// Operations are returned in a fixed method order
	item := openapi.PathItem{
		Delete: &openapi.Operation{OperationId: "remove"},
		Get:    &openapi.Operation{OperationId: "read"},
		Post:   &openapi.Operation{OperationId: "create"},
	}
	ops := item.Operations()
	if !assert.Len(ops, 3) {
		t.FailNow()
	}
	assert.Equal("GET", ops[0].Method)
	assert.Equal("read", ops[0].Operation.OperationId)
	assert.Equal("POST", ops[1].Method)
	assert.Equal("DELETE", ops[2].Method)
}

func Test_document_002(t *testing.T) {
	assert := assert.New(t)

	doc, err := openapi.Parse([]byte(`{
		"openapi": "3.0.0",
		"paths": {},
		"components": {
			"schemas": {
				"Pet": {"type": "object"}
			}
		}
	}`), openapi.FormatJSON)
	if !assert.NoError(err) {
		t.FailNow()
	}

	// Local references resolve against components
	s, err := doc.ResolveRef("#/components/schemas/Pet")
	assert.NoError(err)
	m, err := s.Map()
	assert.NoError(err)
	assert.Equal("object", m["type"])

	// Missing and non-local references are errors
	_, err = doc.ResolveRef("#/components/schemas/Owner")
	assert.Error(err)
	assert.ErrorContains(err, "unresolved reference")

	_, err = doc.ResolveRef("https://example.com/schema.json#/Pet")
	assert.Error(err)
	assert.ErrorContains(err, "unsupported reference")
}

func Test_document_003(t *testing.T) {
	assert := assert.New(t)

	// Paths round-trip through JSON preserving order
	source := `{"openapi":"3.0.0","paths":{"/b":{"get":{"operationId":"b"}},"/a":{"get":{"operationId":"a"}},"/c":{"get":{"operationId":"c"}}}}`
	doc, err := openapi.Parse([]byte(source), openapi.FormatJSON)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("/b", doc.Paths[0].Path)
	assert.Equal("/a", doc.Paths[1].Path)
	assert.Equal("/c", doc.Paths[2].Path)

	data, err := json.Marshal(doc.Paths)
	assert.NoError(err)

	var paths openapi.Paths
	err = json.Unmarshal(data, &paths)
	assert.NoError(err)
	assert.Equal(doc.Paths, paths)
}
