package httphandler

import (
	"context"
	"net/http"

	// Packages
	agenttools "github.com/mutablelogic/go-agent-tools"
	generator "github.com/mutablelogic/go-agent-tools/pkg/generator"
	apidoc "github.com/mutablelogic/go-agent-tools/pkg/openapi"
	schema "github.com/mutablelogic/go-agent-tools/pkg/schema"
	validator "github.com/mutablelogic/go-agent-tools/pkg/validator"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /generate
func GenerateHandler() (string, http.HandlerFunc, *openapi.PathItem) {
	return "/generate", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req schema.GenerateRequest
				if err := httprequest.Read(r, &req); err != nil {
					_ = httpresponse.Error(w, err)
					return
				}
				resp, err := generate(r.Context(), req)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Post: &openapi.Operation{
				Description: "Generate tool definitions from an OpenAPI document",
			},
		})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func generate(ctx context.Context, req schema.GenerateRequest) (*schema.GenerateResponse, error) {
	var doc *apidoc.Document
	var err error
	switch {
	case req.URL != "" && len(req.Spec) > 0:
		return nil, agenttools.ErrBadParameter.With("url and spec are mutually exclusive")
	case req.URL != "":
		doc, err = apidoc.LoadURL(ctx, req.URL)
	case len(req.Spec) > 0:
		doc, err = apidoc.Parse(req.Spec, apidoc.FormatAuto)
	default:
		return nil, agenttools.ErrBadParameter.With("missing url or spec")
	}
	if err != nil {
		return nil, err
	}

	tools, skipped, err := generator.Generate(doc, req.BaseURL)
	if err != nil {
		return nil, err
	}

	var failed []schema.FailedTool
	if req.Validate {
		tools, failed = validator.Fix(tools)
	}

	return &schema.GenerateResponse{
		Count:   uint(len(tools)),
		Body:    tools,
		Skipped: skipped,
		Failed:  failed,
	}, nil
}
