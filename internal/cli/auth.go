package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"shortsmith/internal/credentials"
	"shortsmith/internal/pipeline"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth <user>",
		Short: "Store an OAuth token bundle for publishing",
		Long: "Stores a token bundle obtained out-of-band (for example via the Google " +
			"OAuth playground) so publish can use it later.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd, args[0])
		},
	}

	cmd.Flags().String("token-file", "", "Path to a JSON token bundle")
	_ = cmd.MarkFlagRequired("token-file")

	return cmd
}

func runAuth(cmd *cobra.Command, userID string) error {
	cfg, _, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	tokenFile, _ := cmd.Flags().GetString("token-file")
	tok, err := readTokenFile(tokenFile)
	if err != nil {
		return err
	}

	if err := pipeline.SaveToken(cfg, userID, tok); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored credential for %s\n", userID)
	return nil
}

func readTokenFile(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}
	if !credentials.Usable(&tok) {
		return nil, fmt.Errorf("token bundle in %s is expired and has no refresh token", path)
	}
	return &tok, nil
}
