package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	client "github.com/mutablelogic/go-client"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// HTTP options
	HTTP struct {
		Addr    string        `name:"addr" default:"localhost:8080" help:"HTTP listen address"`
		Prefix  string        `name:"prefix" default:"/api/v1" help:"HTTP path prefix"`
		Origin  string        `name:"origin" default:"*" help:"CORS allowed origin"`
		Timeout time.Duration `name:"timeout" help:"HTTP client timeout"`
	} `embed:"" prefix:"http."`

	// Context
	ctx      context.Context
	execName string
}

type CLI struct {
	Globals

	// Commands
	Generate GenerateCmd    `cmd:"" help:"Generate tool definitions from an OpenAPI document"`
	Validate ValidateCmd    `cmd:"" help:"Validate and repair tool definitions"`
	Run      RunCmd         `cmd:"" help:"Run a tool against its endpoint"`
	Server   ServerCommands `cmd:"" help:"HTTP server commands"`
	Version  VersionCmd     `cmd:"" help:"Print version information"`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("OpenAPI tool definition generator and validator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}

func (g *Globals) clientOpts() []client.ClientOpt {
	result := []client.ClientOpt{}
	if g.Debug || g.Verbose {
		result = append(result, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.HTTP.Timeout != 0 {
		result = append(result, client.OptTimeout(g.HTTP.Timeout))
	}
	return result
}
