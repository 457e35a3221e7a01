package schema_test

import (
	"encoding/json"
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-agent-tools/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	yaml "gopkg.in/yaml.v3"
)

func Test_jsonschema_001(t *testing.T) {
	assert := assert.New(t)

	var s schema.JSONSchema
	assert.True(s.IsZero())

	m, err := s.Map()
	assert.NoError(err)
	assert.Nil(m)

	s = schema.NewJSONSchema(json.RawMessage(`{"type": "string"}`))
	assert.False(s.IsZero())
	m, err = s.Map()
	assert.NoError(err)
	assert.Equal("string", m["type"])
}

func Test_jsonschema_002(t *testing.T) {
	assert := assert.New(t)

	// YAML sources decode to JSON bytes
	var s struct {
		Schema schema.JSONSchema `yaml:"schema"`
	}
	err := yaml.Unmarshal([]byte(`
schema:
  type: object
  properties:
    name:
      type: string
`), &s)
	if !assert.NoError(err) {
		t.FailNow()
	}
	m, err := s.Schema.Map()
	assert.NoError(err)
	assert.Equal("object", m["type"])
	assert.Contains(m["properties"], "name")
}

func Test_jsonschema_003(t *testing.T) {
	assert := assert.New(t)

	// JSON null unmarshals to a zero schema
	var s struct {
		Schema schema.JSONSchema `json:"schema"`
	}
	err := json.Unmarshal([]byte(`{"schema": null}`), &s)
	assert.NoError(err)
	assert.True(s.Schema.IsZero())
}

func Test_tooldef_001(t *testing.T) {
	assert := assert.New(t)

	tool := schema.ToolDefinition{
		Name:        "get_weather",
		Description: "Return the current weather",
		InputSchema: schema.NewJSONSchema(json.RawMessage(`{"type":"object","properties":{}}`)),
		Method:      "GET",
		URL:         "https://api.example.com/weather",
	}

	// Copy is deep: modifying the copy's schema leaves the original
	other := tool.Copy()
	other.InputSchema[0] = ' '
	assert.NotEqual(string(tool.InputSchema), string(other.InputSchema))
	assert.Equal(tool.Name, other.Name)

	// String is indented JSON
	assert.Contains(tool.String(), `"name": "get_weather"`)
	assert.Contains(tool.String(), `"input_schema"`)
}
