package main

import (
	"encoding/json"
	"fmt"
	"os"

	// Packages
	apitool "github.com/mutablelogic/go-agent-tools/pkg/apitool"
	tool "github.com/mutablelogic/go-agent-tools/pkg/tool"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type RunCmd struct {
	Input string `arg:"" help:"Path to the tool definitions file"`
	Tool  string `arg:"" help:"Name of the tool to run"`
	Args  string `name:"args" default:"{}" help:"Tool input as JSON"`
}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RunCmd) Run(ctx *Globals) error {
	defs, err := readTools(cmd.Input)
	if err != nil {
		return err
	}

	// Register the tools, skipping definitions which cannot be bound
	toolkit, err := tool.NewToolkit()
	if err != nil {
		return err
	}
	for _, def := range defs {
		t, err := apitool.New(def, ctx.clientOpts()...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipped %s: %v\n", def.Name, err)
			continue
		}
		if err := toolkit.Register(t); err != nil {
			return err
		}
	}

	// Run the tool and print the response
	result, err := toolkit.Run(ctx.ctx, cmd.Tool, json.RawMessage(cmd.Args))
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))

	return nil
}
