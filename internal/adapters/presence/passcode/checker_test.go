package passcode

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHash(t *testing.T, passcode string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func scripted(inputs ...string) (Prompter, *int) {
	calls := 0
	return func(context.Context, string) (string, error) {
		if calls >= len(inputs) {
			return "", domain.ErrUserCanceled
		}
		input := inputs[calls]
		calls++
		return input, nil
	}, &calls
}

func TestCheckerAcceptsCorrectPasscode(t *testing.T) {
	t.Parallel()

	prompt, calls := scripted("1234")
	checker := New(testHash(t, "1234"), prompt)

	require.NoError(t, checker.Challenge(context.Background(), "Connect to web-1"))
	assert.Equal(t, 1, *calls)
}

func TestCheckerRetriesThenFails(t *testing.T) {
	t.Parallel()

	prompt, calls := scripted("0000", "1111", "2222", "1234")
	checker := New(testHash(t, "1234"), prompt)

	err := checker.Challenge(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrAuthFailed)
	assert.Equal(t, DefaultAttempts, *calls)
}

func TestCheckerSecondAttemptSucceeds(t *testing.T) {
	t.Parallel()

	prompt, _ := scripted("0000", "1234")
	checker := New(testHash(t, "1234"), prompt)

	require.NoError(t, checker.Challenge(context.Background(), ""))
}

func TestCheckerEmptyInputCancels(t *testing.T) {
	t.Parallel()

	prompt, _ := scripted("")
	checker := New(testHash(t, "1234"), prompt)

	require.ErrorIs(t, checker.Challenge(context.Background(), ""), domain.ErrUserCanceled)
}

func TestCheckerPropagatesPromptErrors(t *testing.T) {
	t.Parallel()

	canceled := New(testHash(t, "1234"), func(context.Context, string) (string, error) {
		return "", domain.ErrUserCanceled
	})
	require.ErrorIs(t, canceled.Challenge(context.Background(), ""), domain.ErrUserCanceled)

	broken := New(testHash(t, "1234"), func(context.Context, string) (string, error) {
		return "", errors.New("no tty")
	})
	err := broken.Challenge(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrKeychain)
	assert.ErrorContains(t, err, "no tty")
}

func TestCheckerWithoutHashIsKeychainError(t *testing.T) {
	t.Parallel()

	checker := New("", func(context.Context, string) (string, error) {
		t.Fatal("prompt must not be shown without a configured passcode")
		return "", nil
	})

	require.ErrorIs(t, checker.Challenge(context.Background(), ""), domain.ErrKeychain)
}

func TestHashVerifiesWithChecker(t *testing.T) {
	t.Parallel()

	hash, err := Hash("2468")
	require.NoError(t, err)

	prompt, _ := scripted("2468")
	require.NoError(t, New(hash, prompt).Challenge(context.Background(), ""))

	_, err = Hash("")
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestReadHidden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "carriage return", input: "1234\r", want: "1234"},
		{name: "newline", input: "abcd\nrest", want: "abcd"},
		{name: "backspace", input: "12x\x7f34\r", want: "1234"},
		{name: "multibyte backspace", input: "pé\x7f\r", want: "p"},
		{name: "ctrl-c", input: "12\x03", wantErr: domain.ErrUserCanceled},
		{name: "ctrl-d on empty line", input: "\x04", wantErr: domain.ErrUserCanceled},
		{name: "eof", input: "12", wantErr: domain.ErrUserCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readHidden(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
