package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"qrlog/internal/config"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory and a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return fmt.Errorf("init failed: %w", err)
		}

		path := cfgFile
		if path == "" {
			path = filepath.Join(cfg.DataDir, config.FileName)
		}
		wrote, err := config.WriteDefault(path, cfg)
		if err != nil {
			return fmt.Errorf("init failed: %w", err)
		}
		if !wrote {
			fmt.Fprintf(cmd.OutOrStdout(), "Already initialized — %s exists\n", path)
			return nil
		}

		h, err := openHistory()
		if err != nil {
			return err
		}
		defer h.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized qrlog in %s\n", cfg.DataDir)
		fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
		return nil
	},
}
