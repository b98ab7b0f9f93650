package cli

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"shortsmith/internal/pipeline"
)

func newMetadataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata <source-title>",
		Short: "Generate title/hook/description variations for a clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetadata(cmd, args[0])
		},
	}

	cmd.Flags().Int("count", 3, "Number of variations to generate")

	return cmd
}

func runMetadata(cmd *cobra.Command, sourceTitle string) error {
	cfg, log, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	count, _ := cmd.Flags().GetInt("count")
	if count <= 0 {
		return fmt.Errorf("count must be > 0, got %d", count)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	variations, err := pipeline.MetadataVariations(ctx, cfg, log, sourceTitle, count)
	if err != nil {
		return fmt.Errorf("generate metadata: %w", err)
	}

	out := cmd.OutOrStdout()
	for i, md := range variations {
		fmt.Fprintf(out, "--- variation %d ---\n", i+1)
		fmt.Fprintf(out, "hook: %s\ntitle: %s\ndescription: %s\ntags: %s\n",
			md.Hook, md.Title, md.Description, strings.Join(md.Tags, ", "))
	}
	return nil
}
