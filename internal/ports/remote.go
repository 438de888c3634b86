package ports

import (
	"context"
	"os/exec"

	"github.com/bnema/yzterm/internal/domain"
)

// Invocation is a fully resolved external command.
type Invocation struct {
	Path string
	Args []string
	// Env is appended to the parent environment.
	Env []string
	// Stdin is fed to the process when not empty.
	Stdin string
}

// Result of a one-shot invocation. A non-zero ExitCode is reported here and
// not as an error; errors are reserved for failures to run at all.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

type CommandRunner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// RemoteCommands builds the client invocations for a target. secret is
// empty when key-based authentication is expected.
type RemoteCommands interface {
	Shell(target domain.Target, secret string) (*exec.Cmd, error)
	Exec(target domain.Target, secret string, command string) (Invocation, error)
	Upload(target domain.Target, secret string, localPath, remotePath string) (Invocation, error)
	Download(target domain.Target, secret string, remotePath, localPath string) (Invocation, error)
}
