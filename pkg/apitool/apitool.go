/*
apitool turns a tool definition into a runnable tool which calls the
bound HTTP endpoint. Path template arguments are substituted into the
URL, remaining arguments travel as query parameters for GET and DELETE
and as a JSON body otherwise.
*/
package apitool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	agenttools "github.com/mutablelogic/go-agent-tools"
	schema "github.com/mutablelogic/go-agent-tools/pkg/schema"
	tool "github.com/mutablelogic/go-agent-tools/pkg/tool"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type apitool struct {
	def    schema.ToolDefinition
	client *client.Client
	path   string
}

var _ tool.Tool = (*apitool)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a runnable tool from a tool definition. The definition
// URL must be absolute; additional client options (timeout, tracing)
// are appended.
func New(def schema.ToolDefinition, opts ...client.ClientOpt) (tool.Tool, error) {
	u, err := url.Parse(def.URL)
	if err != nil {
		return nil, agenttools.ErrBadParameter.Withf("tool %q: %v", def.Name, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, agenttools.ErrBadParameter.Withf("tool %q: URL %q is not absolute", def.Name, def.URL)
	}

	c, err := client.New(append([]client.ClientOpt{
		client.OptEndpoint(u.Scheme + "://" + u.Host),
	}, opts...)...)
	if err != nil {
		return nil, err
	}

	return &apitool{
		def:    def.Copy(),
		client: c,
		path:   u.Path,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (t *apitool) Name() string {
	return t.def.Name
}

func (t *apitool) Description() string {
	return t.def.Description
}

func (t *apitool) Schema() (*jsonschema.Schema, error) {
	if t.def.InputSchema.IsZero() {
		return nil, nil
	}
	var result jsonschema.Schema
	if err := json.Unmarshal(t.def.InputSchema.Bytes(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Run calls the endpoint with the given input and returns the decoded
// JSON response.
func (t *apitool) Run(ctx context.Context, input json.RawMessage) (any, error) {
	args := make(map[string]any)
	if len(input) > 0 {
		if err := json.Unmarshal(input, &args); err != nil {
			return nil, agenttools.ErrBadParameter.Withf("tool %q: %v", t.def.Name, err)
		}
	}

	// Substitute path template arguments, which are consumed from the
	// argument set
	path, err := t.expandPath(args)
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(t.def.Method)
	segments := make([]any, 0, strings.Count(path, "/")+1)
	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	opts := []client.RequestOpt{
		client.OptPath(segments...),
	}

	// Remaining arguments travel as query parameters or a JSON body
	var payload client.Payload
	switch method {
	case http.MethodGet, http.MethodDelete, "":
		if len(args) > 0 {
			query := make(url.Values, len(args))
			for name, value := range args {
				query.Set(name, queryValue(value))
			}
			opts = append(opts, client.OptQuery(query))
		}
		if method == http.MethodDelete {
			payload = client.NewRequestEx(http.MethodDelete, "")
		}
	case http.MethodPost:
		if payload, err = client.NewJSONRequest(args); err != nil {
			return nil, err
		}
	default:
		if payload, err = client.NewJSONRequestEx(method, args, client.ContentTypeAny); err != nil {
			return nil, err
		}
	}

	var result any
	if err := t.client.DoWithContext(ctx, payload, &result, opts...); err != nil {
		return nil, err
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t *apitool) String() string {
	return t.def.String()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t *apitool) expandPath(args map[string]any) (string, error) {
	segments := strings.Split(t.path, "/")
	for i, segment := range segments {
		if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
			continue
		}
		name := segment[1 : len(segment)-1]
		value, exists := args[name]
		if !exists {
			return "", agenttools.ErrBadParameter.Withf("tool %q: missing path parameter %q", t.def.Name, name)
		}
		segments[i] = url.PathEscape(queryValue(value))
		delete(args, name)
	}
	return strings.Join(segments, "/"), nil
}

func queryValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	case bool, float64, json.Number:
		return fmt.Sprint(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}
