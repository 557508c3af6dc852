package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/storage"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var limit int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived PDFs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var infos []storage.BlobInfo
			runErr := ctx.withStores(func(storeCtx context.Context, client *storage.Client) error {
				blobs, err := client.Blobs()
				if err != nil {
					return err
				}
				infos, err = blobs.List(storeCtx, limit)
				return err
			})
			if runErr != nil {
				return runErr
			}

			out := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintln(out, "No archived documents")
				return nil
			}

			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{
					info.Filename,
					formatSize(info.Length),
					info.UploadDate.Local().Format("2006-01-02 15:04"),
					info.ID.Hex(),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Filename", "Size", "Uploaded", "Blob ID"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().Int64VarP(&limit, "limit", "n", 20, "Maximum number of documents to list (0 for all)")
	return cmd
}
