package execrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/yzterm/internal/ports"
)

type Runner struct{}

var _ ports.CommandRunner = (*Runner)(nil)

func New() *Runner {
	return &Runner{}
}

// Run executes inv to completion. A process that ran and exited non-zero is
// a Result, not an error.
func (r *Runner) Run(ctx context.Context, inv ports.Invocation) (ports.Result, error) {
	if err := ctx.Err(); err != nil {
		return ports.Result{}, err
	}
	if inv.Path == "" {
		return ports.Result{}, errors.New("invocation has no executable")
	}

	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}
	if inv.Stdin != "" {
		cmd.Stdin = strings.NewReader(inv.Stdin)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ports.Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("run %s: %w", inv.Path, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("run %s: %w", inv.Path, err)
	}

	return result, nil
}
