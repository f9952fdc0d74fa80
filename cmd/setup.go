package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/allowance/internal/config"
	"github.com/theirongolddev/allowance/internal/model"
	"github.com/theirongolddev/allowance/internal/prompt"
	"github.com/theirongolddev/allowance/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	user1 := cfg.UserLabel(model.User1)
	user2 := cfg.UserLabel(model.User2)
	defaultUser := cfg.General.DefaultUser
	themeName := cfg.Appearance.Theme

	notBlank := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("a name is required")
		}
		return nil
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to allowance!").
				Description("Budgets run from the 16th to the 15th.\nLet's set up a few things."),
			huh.NewInput().
				Title("Name of the first user").
				Value(&user1).
				Validate(notBlank),
			huh.NewInput().
				Title("Name of the second user").
				Value(&user2).
				Validate(notBlank),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Start as").
				Options(
					huh.NewOption("Whoever was active last", ""),
					huh.NewOption("First user", string(model.User1)),
					huh.NewOption("Second user", string(model.User2)),
				).
				Value(&defaultUser),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
		),
	).WithAccessible(os.Getenv("ACCESSIBLE") != "")

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return prompt.ErrCanceled
		}
		return fmt.Errorf("setup form: %w", err)
	}

	cfg.Users.User1 = strings.TrimSpace(user1)
	cfg.Users.User2 = strings.TrimSpace(user2)
	cfg.General.DefaultUser = defaultUser
	cfg.Appearance.Theme = themeName

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println()
	fmt.Println("  Try:")
	fmt.Println("    allowance budget set 50000")
	fmt.Println("    allowance category edit \"Food & Cafe\" 20000")
	fmt.Println("    allowance tui")
	fmt.Println()
	return nil
}
