package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/token-scout/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "token-scout",
	Short: "Solana token metadata, rug risk and pump scoring",
	Long:  "Fetches Solana token metadata from Helius and Birdeye, classifies rug risk via RugCheck, and scores pump probability with a heuristic or an external scoring delegate.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
