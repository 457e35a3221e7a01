package openapi

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	// Packages
	agenttools "github.com/mutablelogic/go-agent-tools"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	userAgent = "go-agent-tools (https://github.com/mutablelogic/go-agent-tools)"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// LoadURL fetches and decodes an OpenAPI document from a URL. The format
// is taken from the Content-Type header when set, then from the URL path
// extension, then sniffed from the content.
func LoadURL(ctx context.Context, url string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// Add headers
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, text/yaml;q=0.9, */*;q=0.8")

	// Execute request using standard http client
	httpClient := &http.Client{}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Check status
	if resp.StatusCode != http.StatusOK {
		return nil, agenttools.ErrInternalServerError.Withf("unexpected status: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Determine the format
	format := formatForContentType(resp.Header.Get("Content-Type"))
	if format == FormatAuto {
		format = FormatForPath(path.Base(req.URL.Path))
	}

	return Parse(data, format)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func formatForContentType(contentType string) Format {
	contentType = strings.ToLower(contentType)
	switch {
	case strings.Contains(contentType, "json"):
		return FormatJSON
	case strings.Contains(contentType, "yaml"), strings.Contains(contentType, "yml"):
		return FormatYAML
	}
	return FormatAuto
}
