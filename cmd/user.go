package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/allowance/internal/config"
	"github.com/theirongolddev/allowance/internal/model"
)

var userCmd = &cobra.Command{
	Use:       "user [user1|user2]",
	Short:     "Show or switch the active user",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(model.User1), string(model.User2)},
	RunE:      runUser,
}

func init() {
	rootCmd.AddCommand(userCmd)
}

func runUser(_ *cobra.Command, args []string) error {
	s, err := openConsoleSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) == 1 {
		return switchUser(s, model.UserID(args[0]), os.Stdout)
	}

	active := s.svc.Book().ActiveUser()
	fmt.Println()
	for _, u := range model.Users {
		marker := " "
		if u == active {
			marker = "▸"
		}
		fmt.Printf("  %s %-6s %s\n", marker, u, s.svc.Label(u))
	}
	fmt.Println()
	return nil
}

// switchUser makes id active. A default_user in the config still decides
// who the next run starts as, so say so when it differs.
func switchUser(s *session, id model.UserID, w io.Writer) error {
	if err := s.svc.SwitchUser(id); err != nil {
		return err
	}
	if pinned := s.cfg.StartUser(); pinned != "" && pinned != id {
		fmt.Fprintf(w, "  Note: default_user in %s starts new sessions as %s.\n", config.Path(), s.svc.Label(pinned))
		fmt.Fprintln(w, "  Clear it with `allowance setup` to keep the last active user.")
	}
	return nil
}
