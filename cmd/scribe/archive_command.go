package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"scribe/internal/archive"
	"scribe/internal/conversation"
	"scribe/internal/notifications"
	"scribe/internal/pdf"
	"scribe/internal/render"
	"scribe/internal/storage"
)

func newArchiveCommand(ctx *commandContext) *cobra.Command {
	var transcriptPath string
	var name string
	var lastName string
	var email string
	var topic string

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Render a conversation to PDF and archive it durably",
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
			if conv.SessionID == "" {
				conv.SessionID = uuid.NewString()
			}
			sub := conversation.Submission{Name: name, LastName: lastName, Email: email}

			// One in-flight archival per session; concurrent calls for the
			// same session would race on the derived filename.
			lock := flock.New(filepath.Join(cfg.LockDir(), lockToken(conv.SessionID)+".lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire session lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("an archival for session %s is already in progress", conv.SessionID)
			}
			defer func() {
				_ = lock.Unlock()
			}()

			loc, err := time.LoadLocation(cfg.Archive.Timezone)
			if err != nil {
				return fmt.Errorf("load timezone: %w", err)
			}
			notifier := notifications.NewService(cfg)
			assets := render.LoadAssets(cfg.Branding.PrimaryLogo, cfg.Branding.AvatarLogo, logger)

			var receipt *archive.Receipt
			archiveErr := ctx.withStores(func(storeCtx context.Context, client *storage.Client) error {
				blobs, err := client.Blobs()
				if err != nil {
					return err
				}
				archiver := archive.New(blobs, client.Metadata(), client.Snapshots(), pdf.NewEncoder(logger), archive.Options{
					AssistantName: cfg.Archive.AssistantName,
					Location:      loc,
					Assets:        assets,
					Logger:        logger,
					Notifier:      notifier,
				})
				receipt, err = archiver.Archive(storeCtx, conv, sub)
				return err
			})
			if archiveErr != nil {
				notifyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = notifier.NotifyArchiveFailed(notifyCtx, archive.Kind(archiveErr), archiveErr)
				return describeArchiveError(archiveErr)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Conversation archived as %s\n", receipt.Filename)
			fmt.Fprintf(out, "  blob id:   %s\n", receipt.BlobID)
			fmt.Fprintf(out, "  record id: %s\n", receipt.RecordID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "Path to the conversation transcript (JSON)")
	cmd.Flags().StringVar(&name, "name", "", "Submitter first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Submitter last name")
	cmd.Flags().StringVar(&email, "email", "", "Submitter email address")
	cmd.Flags().StringVar(&topic, "topic", "", "Override the transcript topic")
	_ = cmd.MarkFlagRequired("transcript")
	return cmd
}

// describeArchiveError keeps the pipeline's classification visible to the
// operator. Compensation failures are the one case that must not read like
// an ordinary error.
func describeArchiveError(err error) error {
	var compErr *archive.CompensationError
	if errors.As(err, &compErr) {
		return fmt.Errorf("CRITICAL: archival left an orphaned document that requires manual cleanup.\n  blob id: %s\n  filename: %s\n  cause: %w", compErr.BlobID, compErr.Filename, err)
	}
	if kind := archive.Kind(err); kind != "" && kind != "unknown" {
		return fmt.Errorf("archival failed (%s): %w", kind, err)
	}
	return err
}
