package openapi_test

import (
	"os"
	"path/filepath"
	"testing"

	// Packages
	openapi "github.com/mutablelogic/go-agent-tools/pkg/openapi"
	assert "github.com/stretchr/testify/assert"
)

const testYAML = `
openapi: 3.0.0
info:
  title: Pets
  version: "1.0"
paths:
  /pets:
    get:
      operationId: listPets
      summary: List all pets
  /owners:
    get:
      operationId: listOwners
  /adoptions:
    post:
      operationId: createAdoption
`

func Test_load_001(t *testing.T) {
	assert := assert.New(t)

	doc, err := openapi.Parse([]byte(`{"openapi": "3.1.0", "paths": {"/pets": {"get": {"operationId": "listPets"}}}}`), openapi.FormatAuto)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("3.1.0", doc.Version())
	assert.Len(doc.Paths, 1)
	assert.NotNil(doc.Paths.Get("/pets"))
	assert.Nil(doc.Paths.Get("/owners"))
}

func Test_load_002(t *testing.T) {
	assert := assert.New(t)

	// YAML documents preserve path order
	doc, err := openapi.Parse([]byte(testYAML), openapi.FormatAuto)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("3.0.0", doc.Version())
	assert.Equal("Pets", doc.Info.Title)
	if !assert.Len(doc.Paths, 3) {
		t.FailNow()
	}
	assert.Equal("/pets", doc.Paths[0].Path)
	assert.Equal("/owners", doc.Paths[1].Path)
	assert.Equal("/adoptions", doc.Paths[2].Path)
	assert.Equal("listPets", doc.Paths[0].Item.Get.OperationId)
}

func Test_load_003(t *testing.T) {
	assert := assert.New(t)

	// Empty and non-OpenAPI content are rejected
	_, err := openapi.Parse(nil, openapi.FormatAuto)
	assert.Error(err)

	_, err = openapi.Parse([]byte("   \n"), openapi.FormatAuto)
	assert.Error(err)

	_, err = openapi.Parse([]byte(`{"hello": "world"}`), openapi.FormatAuto)
	assert.Error(err)
	assert.ErrorContains(err, "not an OpenAPI document")
}

func Test_load_004(t *testing.T) {
	assert := assert.New(t)

	// Swagger 2.0 documents report the swagger version
	doc, err := openapi.Parse([]byte(`{"swagger": "2.0", "paths": {}}`), openapi.FormatJSON)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("2.0", doc.Version())
}

func Test_load_005(t *testing.T) {
	assert := assert.New(t)

	// The file extension takes precedence over content sniffing
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.yaml")
	if err := os.WriteFile(path, []byte(testYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := openapi.ReadFile(path)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("3.0.0", doc.Version())

	_, err = openapi.ReadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(err)
}

func Test_load_006(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(openapi.FormatYAML, openapi.FormatForPath("spec.yaml"))
	assert.Equal(openapi.FormatYAML, openapi.FormatForPath("spec.YML"))
	assert.Equal(openapi.FormatJSON, openapi.FormatForPath("spec.json"))
	assert.Equal(openapi.FormatAuto, openapi.FormatForPath("spec.txt"))
}
