package main

import (
	"fmt"
	"os"

	// Packages
	agenttools "github.com/mutablelogic/go-agent-tools"
	generator "github.com/mutablelogic/go-agent-tools/pkg/generator"
	openapi "github.com/mutablelogic/go-agent-tools/pkg/openapi"
	schema "github.com/mutablelogic/go-agent-tools/pkg/schema"
	validator "github.com/mutablelogic/go-agent-tools/pkg/validator"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type GenerateCmd struct {
	File     string `arg:"" optional:"" help:"Path to the OpenAPI document (default stdin)"`
	URL      string `name:"url" help:"URL of the OpenAPI document"`
	BaseURL  string `name:"base-url" help:"Base URL for resolving operation paths"`
	Output   string `name:"output" short:"o" help:"Output file (default stdout)"`
	Validate bool   `name:"validate" help:"Validate and repair the generated tools"`
}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *GenerateCmd) Run(ctx *Globals) error {
	// Load the document
	var doc *openapi.Document
	var err error
	switch {
	case cmd.URL != "" && cmd.File != "":
		return agenttools.ErrBadParameter.With("use either a url or a file, not both")
	case cmd.URL != "":
		doc, err = openapi.LoadURL(ctx.ctx, cmd.URL)
	case cmd.File != "":
		doc, err = openapi.ReadFile(cmd.File)
	default:
		doc, err = openapi.Read(os.Stdin)
	}
	if err != nil {
		return err
	}

	// Generate the tools
	tools, skipped, err := generator.Generate(doc, cmd.BaseURL)
	if err != nil {
		return err
	}

	// Validate and repair when requested
	var failed []schema.FailedTool
	if cmd.Validate {
		tools, failed = validator.Fix(tools)
	}

	// Report skipped operations and failed tools
	for _, report := range skipped {
		fmt.Fprintf(os.Stderr, "skipped %s %s: %s\n", report.Method, report.Path, report.Reason)
	}
	for _, tool := range failed {
		fmt.Fprintf(os.Stderr, "failed %s: %s\n", tool.Tool.Name, tool.Reason)
	}

	return writeJSON(cmd.Output, tools)
}
