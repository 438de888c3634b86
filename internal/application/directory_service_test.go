package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
	"github.com/bnema/yzterm/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var webTarget = domain.Target{Address: "192.168.1.10", Port: 22, Username: "root"}

func TestDirectoryServiceListParsesHome(t *testing.T) {
	remote := mocks.NewMockRemoteCommands(t)
	runner := mocks.NewMockCommandRunner(t)
	service := NewDirectoryService(remote, runner, nil)

	inv := ports.Invocation{Path: "ssh", Args: []string{"root@192.168.1.10", "ls -la ~"}}
	remote.EXPECT().Exec(webTarget, "pw", "ls -la ~").Return(inv, nil)
	runner.EXPECT().Run(mockAnyContext(), inv).Return(ports.Result{Stdout: strings.Join([]string{
		"total 16",
		"drwxr-xr-x 4 root root 4096 Jan 1 00:00 .",
		"drwxr-xr-x 20 root root 4096 Jan 1 00:00 ..",
		"drwxr-xr-x 2 root root 4096 Jan 1 00:00 dirname",
		"-rw-r--r-- 1 root root 12 Jan 1 00:00 file.txt",
	}, "\n")}, nil)

	files, err := service.List(context.Background(), webTarget, "pw", "~")
	require.NoError(t, err)
	assert.Equal(t, []domain.FileEntry{
		{Name: "dirname", Kind: domain.FileKindDirectory, Size: 4096, Permissions: "drwxr-xr-x"},
		{Name: "file.txt", Kind: domain.FileKindFile, Size: 12, Permissions: "-rw-r--r--"},
	}, files)
}

func TestDirectoryServiceQuotesPaths(t *testing.T) {
	remote := mocks.NewMockRemoteCommands(t)
	runner := mocks.NewMockCommandRunner(t)
	service := NewDirectoryService(remote, runner, nil)

	remote.EXPECT().Exec(webTarget, "", "ls -la ~/'My Docs'").Return(ports.Invocation{Path: "ssh"}, nil)
	runner.EXPECT().Run(mockAnyContext(), ports.Invocation{Path: "ssh"}).Return(ports.Result{}, nil)

	files, err := service.List(context.Background(), webTarget, "", "~/My Docs")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDirectoryServiceNonZeroExitFiltersHostKeyNotice(t *testing.T) {
	remote := mocks.NewMockRemoteCommands(t)
	runner := mocks.NewMockCommandRunner(t)
	service := NewDirectoryService(remote, runner, nil)

	remote.EXPECT().Exec(webTarget, "", "ls -la '/root/secret'").Return(ports.Invocation{Path: "ssh"}, nil)
	runner.EXPECT().Run(mockAnyContext(), ports.Invocation{Path: "ssh"}).Return(ports.Result{
		Stderr: "Warning: Permanently added '192.168.1.10' (ED25519) to the list of known hosts.\r\n" +
			"ls: cannot open directory '/root/secret': Permission denied\n",
		ExitCode: 2,
	}, nil)

	_, err := service.List(context.Background(), webTarget, "", "/root/secret")
	require.ErrorIs(t, err, domain.ErrListFailed)
	assert.ErrorContains(t, err, "cannot open directory")
	assert.NotContains(t, err.Error(), "Permanently added")
}

func TestDirectoryServiceEmptyStderrUsesDefaultMessage(t *testing.T) {
	remote := mocks.NewMockRemoteCommands(t)
	runner := mocks.NewMockCommandRunner(t)
	service := NewDirectoryService(remote, runner, nil)

	remote.EXPECT().Exec(webTarget, "", "ls -la '/x'").Return(ports.Invocation{Path: "ssh"}, nil)
	runner.EXPECT().Run(mockAnyContext(), ports.Invocation{Path: "ssh"}).Return(ports.Result{
		Stderr:   "Warning: Permanently added 'x' (ED25519) to the list of known hosts.\n",
		ExitCode: 255,
	}, nil)

	_, err := service.List(context.Background(), webTarget, "", "/x")
	require.ErrorIs(t, err, domain.ErrListFailed)
	assert.ErrorContains(t, err, "failed to list directory")
}

func TestDirectoryServiceRunnerFailureIsListError(t *testing.T) {
	remote := mocks.NewMockRemoteCommands(t)
	runner := mocks.NewMockCommandRunner(t)
	service := NewDirectoryService(remote, runner, nil)

	remote.EXPECT().Exec(webTarget, "", "ls -la ~").Return(ports.Invocation{Path: "ssh"}, nil)
	runner.EXPECT().Run(mockAnyContext(), ports.Invocation{Path: "ssh"}).Return(ports.Result{}, errors.New("exec: \"ssh\": executable file not found"))

	_, err := service.List(context.Background(), webTarget, "", "")
	require.ErrorIs(t, err, domain.ErrListError)
	assert.NotErrorIs(t, err, domain.ErrListFailed)
}

func TestDirectoryServiceBuilderFailureIsListError(t *testing.T) {
	remote := mocks.NewMockRemoteCommands(t)
	service := NewDirectoryService(remote, mocks.NewMockCommandRunner(t), nil)

	remote.EXPECT().Exec(domain.Target{}, "", "ls -la ~").Return(ports.Invocation{}, domain.ErrInvalidConfig)

	_, err := service.List(context.Background(), domain.Target{}, "", "~")
	require.ErrorIs(t, err, domain.ErrListError)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}
