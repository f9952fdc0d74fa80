package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/allowance/internal/config"
	"github.com/theirongolddev/allowance/internal/model"
	"github.com/theirongolddev/allowance/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	dataDir := resolveDataDir(cfg)
	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", dataDir)
	fmt.Printf("    Database:       %s\n", store.Path(dataDir))
	if u := cfg.StartUser(); u != "" {
		fmt.Printf("    Default user:   %s\n", u)
	} else {
		fmt.Println("    Default user:   last active")
	}
	fmt.Printf("    Assume yes:     %v\n", cfg.General.AssumeYes)
	fmt.Println()

	fmt.Println("  [Users]")
	for _, u := range model.Users {
		fmt.Printf("    %s: %s\n", u, cfg.UserLabel(u))
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  Run `allowance setup` to reconfigure.")
	return nil
}
