package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// Packages
	validator "github.com/mutablelogic/go-agent-tools/pkg/validator"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ValidateCmd struct {
	Input  string `arg:"" help:"Path to the tool definitions file"`
	Output string `name:"output" short:"o" help:"Output file (default adds a -fixed suffix to the input)"`
}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ValidateCmd) Run(ctx *Globals) error {
	tools, err := readTools(cmd.Input)
	if err != nil {
		return err
	}

	fixed, failed := validator.Fix(tools)
	for _, tool := range failed {
		fmt.Fprintf(os.Stderr, "failed %s: %s\n", tool.Tool.Name, tool.Reason)
	}

	output := cmd.Output
	if output == "" {
		ext := filepath.Ext(cmd.Input)
		output = strings.TrimSuffix(cmd.Input, ext) + "-fixed" + ext
	}
	return writeJSON(output, fixed)
}
