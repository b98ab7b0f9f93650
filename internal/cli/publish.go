package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"shortsmith/internal/pipeline"
)

func newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish <clip-id>",
		Short: "Upload a completed clip to YouTube",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, args[0])
		},
	}

	cmd.Flags().String("user", "default", "Stored credential to publish with")
	cmd.Flags().String("title", "", "Override the video title")
	cmd.Flags().String("privacy", "", "Privacy status (public|unlisted|private)")

	return cmd
}

func runPublish(cmd *cobra.Command, clipID string) error {
	cfg, log, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	user, _ := cmd.Flags().GetString("user")
	title, _ := cmd.Flags().GetString("title")
	privacy, _ := cmd.Flags().GetString("privacy")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rec, err := pipeline.Publish(ctx, cfg, log, pipeline.PublishRequest{
		ClipID:  clipID,
		UserID:  user,
		Title:   title,
		Privacy: privacy,
	})
	if err != nil {
		return fmt.Errorf("publish clip: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "published: %s\n", rec.RemoteURL)
	return nil
}
