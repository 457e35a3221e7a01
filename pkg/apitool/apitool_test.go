package apitool_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	apitool "github.com/mutablelogic/go-agent-tools/pkg/apitool"
	schema "github.com/mutablelogic/go-agent-tools/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

// echo returns the request method, path, query and body as JSON
func echo(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"method": r.Method,
		"path":   r.URL.Path,
		"query":  r.URL.Query().Encode(),
		"body":   string(body),
	})
}

func Test_apitool_001(t *testing.T) {
	assert := assert.New(t)
	server := httptest.NewServer(http.HandlerFunc(echo))
	defer server.Close()

	tool, err := apitool.New(schema.ToolDefinition{
		Name:        "get_pet",
		Description: "Return a pet by id",
		InputSchema: schema.NewJSONSchema(json.RawMessage(`{
			"type": "object",
			"properties": {
				"petId": {"type": "string"},
				"verbose": {"type": "boolean"}
			},
			"required": ["petId"]
		}`)),
		Method: "GET",
		URL:    server.URL + "/pets/{petId}",
	})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("get_pet", tool.Name())
	assert.Equal("Return a pet by id", tool.Description())

	// Path parameters are substituted, the rest become the query
	result, err := tool.Run(context.TODO(), json.RawMessage(`{"petId": "42", "verbose": true}`))
	if !assert.NoError(err) {
		t.FailNow()
	}
	response := result.(map[string]any)
	assert.Equal("GET", response["method"])
	assert.Equal("/pets/42", response["path"])
	assert.Equal("verbose=true", response["query"])

	// Missing path parameters are an error
	_, err = tool.Run(context.TODO(), json.RawMessage(`{"verbose": false}`))
	assert.Error(err)
	assert.ErrorContains(err, "missing path parameter")
}

func Test_apitool_002(t *testing.T) {
	assert := assert.New(t)
	server := httptest.NewServer(http.HandlerFunc(echo))
	defer server.Close()

	tool, err := apitool.New(schema.ToolDefinition{
		Name:        "create_pet",
		Description: "Create a pet",
		InputSchema: schema.NewJSONSchema(json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string"}
			}
		}`)),
		Method: "POST",
		URL:    server.URL + "/pets",
	})
	if !assert.NoError(err) {
		t.FailNow()
	}

	// Arguments travel as the JSON body
	result, err := tool.Run(context.TODO(), json.RawMessage(`{"name": "rex"}`))
	if !assert.NoError(err) {
		t.FailNow()
	}
	response := result.(map[string]any)
	assert.Equal("POST", response["method"])
	assert.Equal("/pets", response["path"])
	assert.Contains(response["body"], `"name":"rex"`)
}

func Test_apitool_003(t *testing.T) {
	assert := assert.New(t)

	// Relative URLs are rejected
	_, err := apitool.New(schema.ToolDefinition{
		Name:   "relative",
		Method: "GET",
		URL:    "/pets",
	})
	assert.Error(err)
	assert.ErrorContains(err, "not absolute")
}

func Test_apitool_004(t *testing.T) {
	assert := assert.New(t)
	server := httptest.NewServer(http.HandlerFunc(echo))
	defer server.Close()

	// Deep paths keep every segment in order
	tool, err := apitool.New(schema.ToolDefinition{
		Name:   "get_pet_photo",
		Method: "GET",
		URL:    server.URL + "/v1/pets/{petId}/photos/{photoId}",
	})
	if !assert.NoError(err) {
		t.FailNow()
	}
	result, err := tool.Run(context.TODO(), json.RawMessage(`{"petId": "42", "photoId": "7"}`))
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("/v1/pets/42/photos/7", result.(map[string]any)["path"])

	// A URL without a path calls the endpoint root
	tool, err = apitool.New(schema.ToolDefinition{
		Name:   "get_root",
		Method: "GET",
		URL:    server.URL,
	})
	if !assert.NoError(err) {
		t.FailNow()
	}
	result, err = tool.Run(context.TODO(), nil)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("/", result.(map[string]any)["path"])
}
