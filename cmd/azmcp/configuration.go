package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/server"
)

// runConfiguration handles the `azmcp configuration` subcommand
func runConfiguration(args []string, stdout io.Writer) error {
	for _, arg := range args {
		switch arg {
		case "--help", "-h":
			fmt.Fprintln(stdout, "Usage: azmcp configuration")
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, "Print the installation instructions, default settings and settings schema.")
			return nil
		default:
			return fmt.Errorf("unknown argument: %s", arg)
		}
	}

	cfg, err := server.NewConfiguration()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}
