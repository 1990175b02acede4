package tools

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	perrors "github.com/grpc-protos/protosync/pkg/errors"
	"github.com/grpc-protos/protosync/pkg/logger"
)

// ExitNotFound is reported when the executable cannot be started.
const ExitNotFound = 127

// Runner executes one external command to completion.
//
//counterfeiter:generate . Runner
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, int, error)
}

// ExecRunner executes commands on the local host.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), stderr.Bytes(), 0, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.Bytes(), stderr.Bytes(), -1, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), err
	}

	exitCode := 1
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		exitCode = ExitNotFound
	}
	return stdout.Bytes(), stderr.Bytes(), exitCode, err
}

// run executes name and converts a failure into *errors.ExternalToolError
// carrying the combined output. Cancellation is returned as the context
// error so callers can tell an interrupt from a failing tool.
func run(ctx context.Context, r Runner, dir, name string, args ...string) (string, error) {
	log := logger.WithFields("component", "tools", "tool", name)
	log.Debug("running", "args", strings.Join(args, " "), "dir", dir)

	stdout, stderr, code, err := r.Run(ctx, dir, name, args...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err == nil && code == 0 {
		return string(stdout), nil
	}

	output := strings.TrimSpace(string(stderr))
	if out := strings.TrimSpace(string(stdout)); out != "" {
		if output != "" {
			output = out + "\n" + output
		} else {
			output = out
		}
	}
	log.Debug("failed", "exit_code", code, "error", err)

	toolErr := &perrors.ExternalToolError{
		Tool:     name,
		Args:     args,
		Dir:      dir,
		ExitCode: code,
		Output:   output,
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		toolErr.Err = err
	}
	return string(stdout), toolErr
}

// ToolVersion returns the first line printed by "<name> --version".
func ToolVersion(ctx context.Context, r Runner, name string) (string, error) {
	out, err := run(ctx, r, "", name, "--version")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return line, nil
}
