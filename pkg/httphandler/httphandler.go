package httphandler

import (
	"errors"
	"net/http"

	// Packages
	agenttools "github.com/mutablelogic/go-agent-tools"
	server "github.com/mutablelogic/go-server"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Router interface {
	RegisterFunc(path string, handler http.HandlerFunc, middleware bool, spec *openapi.PathItem) error
}

func RegisterHandlers(router server.HTTPRouter, middleware bool) error {
	var result error

	// Convenience function to register a handler and accumulate any errors
	register := func(path string, handler http.HandlerFunc, spec *openapi.PathItem) {
		result = errors.Join(result, router.(Router).RegisterFunc(path, handler, middleware, spec))
	}

	// Register handlers
	register(GenerateHandler())
	register(ValidateHandler())

	// Return any errors
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// httpErr converts an agenttools.Err to an httpresponse.Err, preserving
// the original error message. Unknown error codes map to 500.
func httpErr(err error) error {
	var toolErr agenttools.Err
	if !errors.As(err, &toolErr) {
		return err
	}
	switch toolErr {
	case agenttools.ErrNotFound:
		return httpresponse.ErrNotFound.With(err)
	case agenttools.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case agenttools.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case agenttools.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	case agenttools.ErrUnsupportedSchema:
		return httpresponse.ErrBadRequest.With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}
