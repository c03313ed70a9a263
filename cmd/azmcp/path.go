package main

import (
	"fmt"
	"io"
	"os"
)

// runPath handles the `azmcp path` subcommand
func runPath(args []string, stdout io.Writer) error {
	for _, arg := range args {
		switch arg {
		case "--help", "-h":
			fmt.Fprintln(stdout, "Usage: azmcp path")
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, "Print the absolute path of the Azure MCP server executable.")
			fmt.Fprintln(stdout, "The latest release is downloaded when no extracted copy exists.")
			return nil
		default:
			return fmt.Errorf("unknown argument: %s", arg)
		}
	}

	ctx, cancel := commandContext()
	defer cancel()

	svc, flush, err := newArtifactService(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer flush()

	path, err := svc.Path(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, path)
	return nil
}
