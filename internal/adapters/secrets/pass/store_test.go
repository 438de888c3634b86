package pass

import (
	"context"
	"fmt"
	"os/exec"
	"testing"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
	"github.com/bnema/yzterm/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testKey = "yzterm/hosts/web-1/password"

func invocationWithArgs(args ...string) interface{} {
	return mock.MatchedBy(func(inv ports.Invocation) bool {
		return assert.ObjectsAreEqual(args, inv.Args)
	})
}

func TestStorePutInsertsSingleLineEntry(t *testing.T) {
	t.Parallel()

	runner := mocks.NewMockCommandRunner(t)
	runner.EXPECT().Run(mock.Anything, ports.Invocation{
		Path:  "pass",
		Args:  []string{"insert", "-m", "-f", testKey},
		Stdin: "hunter2\n",
	}).Return(ports.Result{}, nil).Once()

	require.NoError(t, NewStore(runner, Config{}).Put(context.Background(), testKey, "hunter2"))
}

func TestStorePutRejectsMultiLineSecret(t *testing.T) {
	t.Parallel()

	err := NewStore(mocks.NewMockCommandRunner(t), Config{}).Put(context.Background(), testKey, "a\nb")
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestStoreGetReturnsFirstLine(t *testing.T) {
	t.Parallel()

	runner := mocks.NewMockCommandRunner(t)
	runner.EXPECT().Run(mock.Anything, invocationWithArgs("show", testKey)).
		Return(ports.Result{Stdout: "hunter2\nurl: 10.0.0.1\n"}, nil)

	value, err := NewStore(runner, Config{}).Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", value)
}

func TestStoreGetMissingEntryIsNotFound(t *testing.T) {
	t.Parallel()

	runner := mocks.NewMockCommandRunner(t)
	runner.EXPECT().Run(mock.Anything, invocationWithArgs("show", testKey)).Return(ports.Result{
		Stderr:   "Error: " + testKey + " is not in the password store.\n",
		ExitCode: 1,
	}, nil)

	_, err := NewStore(runner, Config{}).Get(context.Background(), testKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetSurfacesStderr(t *testing.T) {
	t.Parallel()

	runner := mocks.NewMockCommandRunner(t)
	runner.EXPECT().Run(mock.Anything, mock.Anything).Return(ports.Result{
		Stderr:   "gpg: decryption failed: No secret key\n",
		ExitCode: 2,
	}, nil)

	_, err := NewStore(runner, Config{}).Get(context.Background(), testKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "No secret key")
}

func TestStoreDeleteToleratesMissingEntry(t *testing.T) {
	t.Parallel()

	runner := mocks.NewMockCommandRunner(t)
	runner.EXPECT().Run(mock.Anything, invocationWithArgs("rm", "-f", testKey)).Return(ports.Result{
		Stderr:   "Error: " + testKey + " is not in the password store.\n",
		ExitCode: 1,
	}, nil)

	require.NoError(t, NewStore(runner, Config{}).Delete(context.Background(), testKey))
}

func TestStoreMissingBinaryIsUnavailable(t *testing.T) {
	t.Parallel()

	runner := mocks.NewMockCommandRunner(t)
	runner.EXPECT().Run(mock.Anything, mock.Anything).
		Return(ports.Result{}, fmt.Errorf("run pass: %w", &exec.Error{Name: "pass", Err: exec.ErrNotFound}))

	_, err := NewStore(runner, Config{}).Get(context.Background(), testKey)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestStoreUsesConfiguredPathAndDir(t *testing.T) {
	t.Parallel()

	runner := mocks.NewMockCommandRunner(t)
	runner.EXPECT().Run(mock.Anything, mock.MatchedBy(func(inv ports.Invocation) bool {
		return inv.Path == "/opt/pass/bin/pass" &&
			assert.ObjectsAreEqual([]string{"PASSWORD_STORE_DIR=/srv/secrets"}, inv.Env)
	})).Return(ports.Result{Stdout: "s\n"}, nil)

	store := NewStore(runner, Config{Path: "/opt/pass/bin/pass", Dir: "/srv/secrets"})
	_, err := store.Get(context.Background(), testKey)
	require.NoError(t, err)
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStore(mocks.NewMockCommandRunner(t), Config{}).Put(ctx, testKey, "s")
	require.ErrorIs(t, err, context.Canceled)
}
