package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"shortsmith/internal/pipeline"
)

func newProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <url>",
		Short: "Download, caption, and render one clip from a source video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, args[0])
		},
	}

	cmd.Flags().Float64("start", 0, "Clip start in seconds")
	cmd.Flags().Float64("end", 0, "Clip end in seconds")
	cmd.Flags().Bool("no-metadata", false, "Skip AI metadata generation")
	cmd.Flags().Duration("timeout", 2*time.Hour, "Overall pipeline timeout")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runProcess(cmd *cobra.Command, url string) error {
	cfg, log, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	start, _ := cmd.Flags().GetFloat64("start")
	end, _ := cmd.Flags().GetFloat64("end")
	noMeta, _ := cmd.Flags().GetBool("no-metadata")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clip, err := pipeline.Process(ctx, cfg, log, pipeline.ProcessRequest{
		SourceURL:    url,
		StartSeconds: start,
		EndSeconds:   end,
		SkipMetadata: noMeta,
	})
	if err != nil {
		return fmt.Errorf("process clip: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "clip %s completed\nartifact: %s\n", clip.ID, clip.ArtifactPath)
	if clip.AITitle != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "title: %s\nhook: %s\n", clip.AITitle, clip.AIHook)
	}
	return nil
}
