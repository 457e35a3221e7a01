/*
agenttools converts OpenAPI service descriptions into tool definitions
which can be passed to LLM agents, and validates and repairs tool
definitions for model compatibility.

The conversion pipeline is: load an OpenAPI document with pkg/openapi,
generate tool definitions with pkg/generator, then optionally pass them
through pkg/validator. Generated definitions can be turned into
runnable tools with pkg/apitool and registered in a pkg/tool Toolkit.
*/
package agenttools
