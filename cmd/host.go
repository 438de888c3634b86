package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bnema/yzterm/internal/application"
	"github.com/bnema/yzterm/internal/domain"
	"github.com/spf13/cobra"
)

func newHostCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Manage saved hosts",
	}

	cmd.AddCommand(
		newHostAddCmd(app),
		newHostEditCmd(app),
		newHostListCmd(app),
		newHostRemoveCmd(app),
	)

	return cmd
}

type passwordFlags struct {
	value string
	stdin bool
}

func (f *passwordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.value, "password", "", "Password to keep in the secret store (visible in the process list)")
	cmd.Flags().BoolVar(&f.stdin, "password-stdin", false, "Read the password from the first line of stdin")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
}

func (f *passwordFlags) resolve(in io.Reader) (string, error) {
	if !f.stdin {
		return f.value, nil
	}

	password, err := readLine(in)
	if err != nil {
		return "", err
	}

	if password == "" {
		return "", fmt.Errorf("%w: empty password on stdin", domain.ErrInvalidConfig)
	}

	return password, nil
}

func newHostAddCmd(app *app) *cobra.Command {
	var (
		in       application.HostInput
		id       string
		password passwordFlags
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := password.resolve(cmd.InOrStdin())
			if err != nil {
				return err
			}
			in.ID = domain.HostID(id)
			in.Password = secret

			host, err := app.hosts.Add(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved host %s (%s)\n", host.DisplayName(), host.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Host ID (generated when empty)")
	cmd.Flags().StringVar(&in.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&in.Address, "address", "", "Host name or IP address")
	cmd.Flags().IntVar(&in.Port, "port", domain.DefaultSSHPort, "SSH port")
	cmd.Flags().StringVar(&in.Username, "user", "", "Login user")
	password.register(cmd)
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newHostEditCmd(app *app) *cobra.Command {
	var (
		name, address, username string
		port                    int
		clearPassword           bool
		password                passwordFlags
	)

	cmd := &cobra.Command{
		Use:   "edit <host-id>",
		Short: "Change a saved host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := password.resolve(cmd.InOrStdin())
			if err != nil {
				return err
			}

			update := application.HostUpdate{Password: secret, ClearPassword: clearPassword}
			flags := cmd.Flags()
			if flags.Changed("name") {
				update.Name = &name
			}
			if flags.Changed("address") {
				update.Address = &address
			}
			if flags.Changed("port") {
				update.Port = &port
			}
			if flags.Changed("user") {
				update.Username = &username
			}

			host, err := app.hosts.Edit(cmd.Context(), domain.HostID(args[0]), update)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated host %s (%s)\n", host.DisplayName(), host.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&address, "address", "", "Host name or IP address")
	cmd.Flags().IntVar(&port, "port", domain.DefaultSSHPort, "SSH port")
	cmd.Flags().StringVar(&username, "user", "", "Login user")
	cmd.Flags().BoolVar(&clearPassword, "clear-password", false, "Forget the saved password")
	password.register(cmd)
	cmd.MarkFlagsMutuallyExclusive("clear-password", "password")
	cmd.MarkFlagsMutuallyExclusive("clear-password", "password-stdin")

	return cmd
}

func newHostListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved hosts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hosts, err := app.hosts.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(hosts)
			}

			rendered, err := app.hostsRenderer(hosts)
			if err != nil {
				return fmt.Errorf("render hosts: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print hosts as JSON")

	return cmd
}

func newHostRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <host-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a saved host and its password",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.hosts.Remove(cmd.Context(), domain.HostID(args[0])); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed host %s\n", args[0])
			return err
		},
	}
}
