package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/config"
)

// runInit handles the `azmcp init` subcommand
func runInit(args []string, stdout io.Writer) error {
	force := false
	for _, arg := range args {
		switch arg {
		case "--help", "-h":
			fmt.Fprintln(stdout, "Usage: azmcp init [--force]")
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, "Write config.lua with the default settings to the state directory.")
			fmt.Fprintln(stdout, "An existing file is kept unless --force is given.")
			return nil
		case "--force", "-f":
			force = true
		default:
			return fmt.Errorf("unknown argument: %s", arg)
		}
	}

	stateDir, err := config.StateDir()
	if err != nil {
		return err
	}
	path := filepath.Join(stateDir, config.FileName)

	content, err := config.NewGenerator().Generate(config.Default())
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}

	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}
