package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/server"
)

// parseSettingsFlag returns the value of --settings, or "" if absent.
func parseSettingsFlag(args []string) (settings string, help bool, err error) {
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--help", "-h":
			return "", true, nil
		case "--settings", "-s":
			if i+1 >= len(args) {
				return "", false, fmt.Errorf("%s requires a file path or -", arg)
			}
			i++
			settings = args[i]
		default:
			return "", false, fmt.Errorf("unknown argument: %s", arg)
		}
	}
	return settings, false, nil
}

// readSettings reads the settings from a file, or stdin for "-".
// No source means the server is not configured.
func readSettings(source string, stdin io.Reader) ([]byte, error) {
	switch source {
	case "":
		return nil, nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read settings from stdin: %w", err)
		}
		return data, nil
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}
		return data, nil
	}
}

// runCommand handles the `azmcp command` subcommand
func runCommand(args []string, stdin io.Reader, stdout io.Writer) error {
	source, help, err := parseSettingsFlag(args)
	if err != nil {
		return err
	}
	if help {
		fmt.Fprintln(stdout, "Usage: azmcp command --settings <file|->")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Print the command that launches the server, as JSON:")
		fmt.Fprintln(stdout, `  {"command": "...", "args": ["server", "start"], "env": {...}}`)
		return nil
	}

	settings, err := readSettings(source, stdin)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	svc, flush, err := newArtifactService(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer flush()

	cmd, err := svc.Command(ctx, settings)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(cmd)
}

// runServer handles the `azmcp run` subcommand
func runServer(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	source, help, err := parseSettingsFlag(args)
	if err != nil {
		return err
	}
	if help {
		fmt.Fprintln(stdout, "Usage: azmcp run --settings <file|->")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Launch the server with this process's stdin and stdout.")
		return nil
	}
	if source == "-" {
		return errors.New("run needs stdin for the server; pass --settings a file")
	}

	settings, err := readSettings(source, stdin)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	svc, flush, err := newArtifactService(ctx, stderr)
	if err != nil {
		return err
	}
	defer flush()

	cmd, err := svc.Command(ctx, settings)
	if err != nil {
		return err
	}

	return execServer(cmd, stdin, stdout, stderr)
}

func execServer(cmd *server.Command, stdin io.Reader, stdout, stderr io.Writer) error {
	child := exec.Command(cmd.Path, cmd.Args...)
	child.Env = cmd.Environ(os.Environ())
	child.Stdin = stdin
	child.Stdout = stdout
	child.Stderr = stderr

	if err := child.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &exitError{code: exitErr.ExitCode()}
		}
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}
