package cmd

import (
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear recorded data for the active user",
}

var resetPeriodCmd = &cobra.Command{
	Use:   "period",
	Short: "Delete every expense and spending total, keeping categories and budgets",
	Args:  cobra.NoArgs,
	RunE:  runResetPeriod,
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete every expense, category and the total budget",
	Args:  cobra.NoArgs,
	RunE:  runResetAll,
}

func init() {
	resetCmd.AddCommand(resetPeriodCmd, resetAllCmd)
	rootCmd.AddCommand(resetCmd)
}

func runResetPeriod(_ *cobra.Command, _ []string) error {
	s, err := openConsoleSession()
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.svc.ResetPeriod()
	return err
}

func runResetAll(_ *cobra.Command, _ []string) error {
	s, err := openConsoleSession()
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.svc.ResetAll()
	return err
}
