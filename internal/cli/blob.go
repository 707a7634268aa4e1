package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewBlobCmd создаёт группу команд для blob storage.
func NewBlobCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blob",
		Short: "Blob related commands",
	}

	cmd.AddCommand(
		newBlobDownloadCmd(clientFn, outputFn),
		newBlobUploadCmd(clientFn, outputFn),
	)

	return cmd
}

func newBlobDownloadCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var src string
	var dst string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a file from bountyhub.org blob storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveOutput(dst, src)
			if err != nil {
				return err
			}

			c, err := clientFn()
			if err != nil {
				return err
			}

			return saveStream(cmd.Context(), outputFn(), path, func(ctx context.Context) (io.ReadCloser, error) {
				return c.DownloadBlobFile(ctx, src)
			})
		},
	}

	cmd.Flags().StringVarP(&src, "src", "s", "", "Path of the file in blob storage")
	cmd.Flags().StringVarP(&dst, "dst", "d", "", "Output file or directory (default: current directory)")
	_ = cmd.MarkFlagDirname("dst")

	return bindEnv(cmd,
		required("src", ""),
		optional("dst", "BOUNTYHUB_OUTPUT"),
	)
}

func newBlobUploadCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var src string
	var dst string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a file to bountyhub.org blob storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(src)
			if err != nil {
				return fmt.Errorf("failed to open file '%s': %w", src, err)
			}
			defer f.Close()

			c, err := clientFn()
			if err != nil {
				return err
			}

			if err := c.UploadBlobFile(cmd.Context(), f, dst); err != nil {
				return fmt.Errorf("failed to upload blob file: %w", err)
			}

			outputFn().Success(fmt.Sprintf("Uploaded %s to %s", src, dst))
			return nil
		},
	}

	cmd.Flags().StringVarP(&src, "src", "s", "", "Source file on the local filesystem")
	cmd.Flags().StringVar(&dst, "dst", "", "Destination path in blob storage")
	_ = cmd.MarkFlagFilename("src")

	return bindEnv(cmd,
		required("src", ""),
		required("dst", ""),
	)
}
