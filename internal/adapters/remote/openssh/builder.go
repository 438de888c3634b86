// Package openssh builds ssh, scp and sshpass invocations for a target.
package openssh

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
)

const (
	DefaultSSHPath     = "ssh"
	DefaultSCPPath     = "scp"
	DefaultSSHPassPath = "sshpass"

	// HostKeyCheckingOff disables host key verification and discards learned
	// keys.
	HostKeyCheckingOff = "no"

	secretEnv = "SSHPASS"
)

type Config struct {
	SSHPath     string
	SCPPath     string
	SSHPassPath string
	// StrictHostKeyChecking is passed to ssh as-is ("no", "accept-new",
	// "yes"). Empty means "no".
	StrictHostKeyChecking string
	// KeepAliveInterval becomes ServerAliveInterval on interactive shells.
	KeepAliveInterval time.Duration
}

type Builder struct {
	cfg Config
}

var _ ports.RemoteCommands = (*Builder)(nil)

func NewBuilder(cfg Config) *Builder {
	if cfg.SSHPath == "" {
		cfg.SSHPath = DefaultSSHPath
	}
	if cfg.SCPPath == "" {
		cfg.SCPPath = DefaultSCPPath
	}
	if cfg.SSHPassPath == "" {
		cfg.SSHPassPath = DefaultSSHPassPath
	}
	if cfg.StrictHostKeyChecking == "" {
		cfg.StrictHostKeyChecking = HostKeyCheckingOff
	}

	return &Builder{cfg: cfg}
}

// Shell returns the interactive client for a PTY session. The process is not
// started.
func (b *Builder) Shell(target domain.Target, secret string) (*exec.Cmd, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	args := []string{"-tt"}
	args = append(args, b.hostKeyOptions()...)
	if b.cfg.KeepAliveInterval > 0 {
		seconds := int(b.cfg.KeepAliveInterval.Round(time.Second) / time.Second)
		args = append(args, "-o", "ServerAliveInterval="+strconv.Itoa(max(seconds, 1)))
	}
	args = append(args, "-p", target.PortString(), target.Destination())

	inv := b.wrap(secret, b.cfg.SSHPath, args)

	cmd := exec.Command(inv.Path, inv.Args...)
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}

	return cmd, nil
}

// Exec runs command on the target through a fresh connection.
func (b *Builder) Exec(target domain.Target, secret string, command string) (ports.Invocation, error) {
	if err := target.Validate(); err != nil {
		return ports.Invocation{}, err
	}
	if command == "" {
		return ports.Invocation{}, fmt.Errorf("%w: empty remote command", domain.ErrInvalidConfig)
	}

	args := []string{"-p", target.PortString()}
	args = append(args, b.hostKeyOptions()...)
	args = append(args, target.Destination(), command)

	return b.wrap(secret, b.cfg.SSHPath, args), nil
}

func (b *Builder) Upload(target domain.Target, secret string, localPath, remotePath string) (ports.Invocation, error) {
	if err := target.Validate(); err != nil {
		return ports.Invocation{}, err
	}

	args := []string{"-P", target.PortString()}
	args = append(args, b.hostKeyOptions()...)
	args = append(args, localPath, remoteOperand(target, remotePath))

	return b.wrap(secret, b.cfg.SCPPath, args), nil
}

func (b *Builder) Download(target domain.Target, secret string, remotePath, localPath string) (ports.Invocation, error) {
	if err := target.Validate(); err != nil {
		return ports.Invocation{}, err
	}

	args := []string{"-P", target.PortString()}
	args = append(args, b.hostKeyOptions()...)
	args = append(args, remoteOperand(target, remotePath), localPath)

	return b.wrap(secret, b.cfg.SCPPath, args), nil
}

// wrap routes the call through sshpass when a password is known. The
// password travels in the environment, never on the command line.
func (b *Builder) wrap(secret string, path string, args []string) ports.Invocation {
	if secret == "" {
		return ports.Invocation{Path: path, Args: args}
	}

	return ports.Invocation{
		Path: b.cfg.SSHPassPath,
		Args: append([]string{"-e", path}, args...),
		Env:  []string{secretEnv + "=" + secret},
	}
}

func (b *Builder) hostKeyOptions() []string {
	opts := []string{"-o", "StrictHostKeyChecking=" + b.cfg.StrictHostKeyChecking}
	if b.cfg.StrictHostKeyChecking == HostKeyCheckingOff {
		opts = append(opts, "-o", "UserKnownHostsFile=/dev/null")
	}
	return opts
}

func remoteOperand(target domain.Target, path string) string {
	return target.Destination() + ":" + path
}
