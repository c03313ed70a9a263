package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	if len(os.Args) < 2 {
		printHelp(os.Stdout)
		return
	}

	var err error
	switch os.Args[1] {
	case "--version", "version":
		fmt.Printf("azmcp %s\n", Version)
		return
	case "--help", "-h", "help":
		printHelp(os.Stdout)
		return
	case "path":
		err = runPath(os.Args[2:], os.Stdout)
	case "command":
		err = runCommand(os.Args[2:], os.Stdin, os.Stdout)
	case "run":
		err = runServer(os.Args[2:], os.Stdin, os.Stdout, os.Stderr)
	case "configuration":
		err = runConfiguration(os.Args[2:], os.Stdout)
	case "init":
		err = runInit(os.Args[2:], os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", os.Args[1])
		printHelp(os.Stderr)
		os.Exit(2)
	}

	if err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// exitError carries the exit status of a child process.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("server exited with status %d", e.code)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "azmcp - fetch, cache and launch the Azure MCP server")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  azmcp --version                        Show version information")
	fmt.Fprintln(w, "  azmcp init [--force]                   Write a default config.lua")
	fmt.Fprintln(w, "  azmcp path                             Print the server executable path, downloading it if needed")
	fmt.Fprintln(w, "  azmcp command --settings <file|->      Print the launch command as JSON")
	fmt.Fprintln(w, "  azmcp run --settings <file|->          Launch the server on this terminal's stdio")
	fmt.Fprintln(w, "  azmcp configuration                    Print installation instructions, default settings and schema as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  AZMCP_DIR       State directory (default: ~/.config/azmcp)")
	fmt.Fprintln(w, "  GITHUB_TOKEN    Optional API token (see token_env in config.lua)")
}
