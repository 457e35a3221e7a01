package httphandler

import (
	"net/http"

	// Packages
	schema "github.com/mutablelogic/go-agent-tools/pkg/schema"
	validator "github.com/mutablelogic/go-agent-tools/pkg/validator"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /validate
func ValidateHandler() (string, http.HandlerFunc, *openapi.PathItem) {
	return "/validate", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req []schema.ToolDefinition
				if err := httprequest.Read(r, &req); err != nil {
					_ = httpresponse.Error(w, err)
					return
				}
				fixed, failed := validator.Fix(req)
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), schema.ValidateResponse{
					Count:  uint(len(fixed)),
					Body:   fixed,
					Failed: failed,
				})
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Post: &openapi.Operation{
				Description: "Validate and repair tool definitions",
			},
		})
}
