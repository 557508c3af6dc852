package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/archive"
	"scribe/internal/conversation"
	"scribe/internal/notifications"
	"scribe/internal/pdf"
	"scribe/internal/storage"
)

func newSnapshotCommand(ctx *commandContext) *cobra.Command {
	var transcriptPath string
	var topic string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Auto-save a conversation without rendering a PDF",
		Long: `Snapshot persists the raw conversation turns so an abandoned session
is not lost. No PDF is produced and no submitter details are required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			conv, err := conversation.Load(transcriptPath)
			if err != nil {
				return err
			}
			if topic != "" {
				conv.Topic = topic
			}

			loc, err := time.LoadLocation(cfg.Archive.Timezone)
			if err != nil {
				return fmt.Errorf("load timezone: %w", err)
			}

			var recordID string
			runErr := ctx.withStores(func(storeCtx context.Context, client *storage.Client) error {
				archiver := archive.New(nil, nil, client.Snapshots(), pdf.NewEncoder(logger), archive.Options{
					AssistantName: cfg.Archive.AssistantName,
					Location:      loc,
					Logger:        logger,
					Notifier:      notifications.Noop(),
				})
				recordID, err = archiver.Snapshot(storeCtx, conv)
				return err
			})
			if runErr != nil {
				return runErr
			}

			out := cmd.OutOrStdout()
			if recordID == "" {
				fmt.Fprintln(out, "Conversation has no dialogue; nothing saved")
				return nil
			}
			fmt.Fprintf(out, "Conversation snapshot saved (record %s)\n", recordID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "Path to the conversation transcript (JSON)")
	cmd.Flags().StringVar(&topic, "topic", "", "Override the transcript topic")
	_ = cmd.MarkFlagRequired("transcript")
	return cmd
}
