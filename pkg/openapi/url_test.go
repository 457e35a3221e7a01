package openapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	openapi "github.com/mutablelogic/go-agent-tools/pkg/openapi"
	assert "github.com/stretchr/testify/assert"
)

func Test_url_001(t *testing.T) {
	assert := assert.New(t)

	// The Content-Type header selects the format
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write([]byte(testYAML))
	}))
	defer server.Close()

	doc, err := openapi.LoadURL(context.TODO(), server.URL+"/spec")
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("3.0.0", doc.Version())
	assert.Len(doc.Paths, 3)
}

func Test_url_002(t *testing.T) {
	assert := assert.New(t)

	// Non-200 responses are errors
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := openapi.LoadURL(context.TODO(), server.URL+"/spec")
	assert.Error(err)
	assert.ErrorContains(err, "unexpected status")
}
