package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/bnema/yzterm/internal/adapters/render/listing"
	"github.com/bnema/yzterm/internal/application"
	"github.com/bnema/yzterm/internal/domain"
	"github.com/spf13/cobra"
)

func newLsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ls <host-id> [path]",
		Short: "List a remote directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := domain.HomePath
			if len(args) == 2 {
				dir = args[1]
			}

			host, secret, err := app.hosts.Credentials(cmd.Context(), domain.HostID(args[0]))
			if err != nil {
				return err
			}

			files, err := app.directories.List(cmd.Context(), host.Target(), secret, dir)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(files)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), listing.Render(dir, files))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")

	return cmd
}

func newUploadCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <host-id> <local-file> [remote-path]",
		Short: "Copy a local file to a host",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			localPath := args[1]
			remotePath := domain.JoinRemotePath(domain.HomePath, filepath.Base(localPath))
			if len(args) == 3 {
				remotePath = args[2]
			}

			host, secret, err := app.hosts.Credentials(cmd.Context(), domain.HostID(args[0]))
			if err != nil {
				return err
			}

			progress := application.TransferProgress{
				Direction: application.TransferUpload,
				FileName:  filepath.Base(localPath),
				StartedAt: time.Now(),
			}
			peer := host.DisplayName() + ":" + remotePath
			err = runTransferSpinner(cmd.Context(), cmd.ErrOrStderr(), progress, peer, func(ctx context.Context) error {
				return app.transfers.Upload(ctx, host.Target(), secret, localPath, remotePath)
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s to %s\n", localPath, remotePath)
			return err
		},
	}
}

func newDownloadCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "download <host-id> <remote-path> [local-path]",
		Short: "Copy a file from a host",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			remotePath := args[1]
			localPath := path.Base(remotePath)
			if len(args) == 3 {
				localPath = args[2]
			}

			host, secret, err := app.hosts.Credentials(cmd.Context(), domain.HostID(args[0]))
			if err != nil {
				return err
			}

			progress := application.TransferProgress{
				Direction: application.TransferDownload,
				FileName:  path.Base(remotePath),
				StartedAt: time.Now(),
			}
			peer := host.DisplayName() + ":" + remotePath
			err = runTransferSpinner(cmd.Context(), cmd.ErrOrStderr(), progress, peer, func(ctx context.Context) error {
				return app.transfers.Download(ctx, host.Target(), secret, remotePath, localPath)
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s to %s\n", remotePath, localPath)
			return err
		},
	}
}
