package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"scribe/internal/storage"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "fetch <filename>",
		Short: "Download an archived PDF by its exact filename",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			target := filepath.Join(outputDir, filepath.Base(filename))
			var blobID string
			var written int64
			runErr := ctx.withStores(func(storeCtx context.Context, client *storage.Client) error {
				blobs, err := client.Blobs()
				if err != nil {
					return err
				}

				// Resolve first so a missing filename fails before any
				// local file is created.
				blobID, err = blobs.FindByFilename(storeCtx, filename)
				if err != nil {
					return err
				}

				tmp, err := os.CreateTemp(outputDir, ".scribe-fetch-*")
				if err != nil {
					return fmt.Errorf("create download file: %w", err)
				}
				defer func() {
					tmp.Close()
					os.Remove(tmp.Name())
				}()

				written, err = blobs.Download(storeCtx, filename, tmp)
				if err != nil {
					return err
				}
				if err := tmp.Close(); err != nil {
					return fmt.Errorf("flush download file: %w", err)
				}
				return os.Rename(tmp.Name(), target)
			})
			if runErr != nil {
				if errors.Is(runErr, storage.ErrNotFound) {
					return fmt.Errorf("no archived document named %q", filename)
				}
				return runErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, blob %s)\n", target, formatSize(written), blobID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory to write the downloaded file into")
	return cmd
}
