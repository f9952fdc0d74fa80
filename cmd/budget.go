package cmd

import (
	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage the total budget",
}

var budgetSetCmd = &cobra.Command{
	Use:   "set AMOUNT",
	Short: "Set the active user's total budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSet,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	s, err := openConsoleSession()
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.svc.SetTotalBudget(args[0])
	return err
}
