package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dupehound/dupehound/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes duplicate
detection as tools LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "dupehound": {
        "command": "dupehound",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - analyze_duplicates  Exact, near, renamed, and stylesheet duplicates
  - preview_refactor    Refactoring plan with estimated savings`,
		Action: runMCP,
		Subcommands: []*cli.Command{
			{
				Name:   "manifest",
				Usage:  "Print the MCP server manifest (server.json)",
				Action: runMCPManifest,
			},
		},
	}
}

func runMCP(c *cli.Context) error {
	ctx, cancel := signalContext()
	defer cancel()
	return mcpserver.NewServer(version).Run(ctx)
}

func runMCPManifest(c *cli.Context) error {
	manifest, err := mcpserver.GenerateManifest(version)
	if err != nil {
		return err
	}
	fmt.Println(string(manifest))
	return nil
}
