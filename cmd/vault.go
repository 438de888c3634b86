package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/yzterm/internal/adapters/presence/passcode"
	"github.com/bnema/yzterm/internal/config"
	"github.com/bnema/yzterm/internal/domain"
	"github.com/spf13/cobra"
)

func newVaultCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Manage access to saved passwords",
	}

	cmd.AddCommand(newVaultPasscodeCmd(app))

	return cmd
}

func newVaultPasscodeCmd(app *app) *cobra.Command {
	var (
		fromStdin bool
		remove    bool
	)

	cmd := &cobra.Command{
		Use:   "passcode",
		Short: "Set the passcode asked before a saved password is used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if remove {
				if err := app.loader.Set(config.KeyVaultPasscodeHash, ""); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Passcode removed")
				return err
			}

			var (
				code string
				err  error
			)
			if fromStdin {
				code, err = readLine(cmd.InOrStdin())
			} else {
				code, err = promptNewPasscode(cmd, app.prompt)
			}
			if err != nil {
				return err
			}

			hash, err := passcode.Hash(code)
			if err != nil {
				return err
			}
			if err := app.loader.Set(config.KeyVaultPasscodeHash, hash); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Passcode saved to %s\n", app.loader.Path())
			return err
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the passcode from the first line of stdin")
	cmd.Flags().BoolVar(&remove, "clear", false, "Remove the passcode")
	cmd.MarkFlagsMutuallyExclusive("stdin", "clear")

	return cmd
}

func promptNewPasscode(cmd *cobra.Command, prompt passcode.Prompter) (string, error) {
	first, err := prompt(cmd.Context(), "New passcode")
	if err != nil {
		return "", err
	}
	second, err := prompt(cmd.Context(), "Repeat passcode")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", fmt.Errorf("%w: passcodes do not match", domain.ErrInvalidConfig)
	}

	return first, nil
}

func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}
