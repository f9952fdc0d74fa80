package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/allowance/internal/budget"
	"github.com/theirongolddev/allowance/internal/cli"
	"github.com/theirongolddev/allowance/internal/report"
)

var (
	flagExpenseCategory    string
	flagExpenseDescription string
	flagExpenseDate        string
)

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "List this period's expenses, newest first",
	Args:  cobra.NoArgs,
	RunE:  runExpenses,
}

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Add or delete an expense",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add AMOUNT",
	Short: "Record an expense",
	Example: "  allowance expense add 1200 -c \"Food & Cafe\" -m lunch\n" +
		"  allowance expense add 800 -c Transport -m taxi --date 2024-06-18",
	Args: cobra.ExactArgs(1),
	RunE: runExpenseAdd,
}

var expenseDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete an expense by id (any unique prefix)",
	Args:    cobra.ExactArgs(1),
	RunE:    runExpenseDelete,
}

func init() {
	expenseAddCmd.Flags().StringVarP(&flagExpenseCategory, "category", "c", "", "Category name")
	expenseAddCmd.Flags().StringVarP(&flagExpenseDescription, "message", "m", "", "Description")
	expenseAddCmd.Flags().StringVar(&flagExpenseDate, "date", "", "Date as YYYY-MM-DD (default today)")
	_ = expenseAddCmd.MarkFlagRequired("category")

	expenseCmd.AddCommand(expenseAddCmd, expenseDeleteCmd)
	rootCmd.AddCommand(expensesCmd, expenseCmd)
}

func runExpenses(_ *cobra.Command, _ []string) error {
	s, err := openConsoleSession()
	if err != nil {
		return err
	}
	defer s.Close()

	list := report.Expenses(s.svc.Book().Active())
	if len(list) == 0 {
		fmt.Println("\n  No expenses this period.")
		return nil
	}
	fmt.Println()
	fmt.Println(cli.RenderTable(cli.ExpenseTable(list)))
	fmt.Println()
	return nil
}

func runExpenseAdd(_ *cobra.Command, args []string) error {
	s, err := openConsoleSession()
	if err != nil {
		return err
	}
	defer s.Close()

	date := flagExpenseDate
	if date == "" {
		date = s.svc.Book().Today()
	}
	_, err = s.svc.AddExpense(budget.ExpenseInput{
		Date:        date,
		Category:    flagExpenseCategory,
		Description: flagExpenseDescription,
		Amount:      args[0],
	})
	return err
}

func runExpenseDelete(_ *cobra.Command, args []string) error {
	s, err := openConsoleSession()
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.svc.DeleteExpense(args[0])
	return err
}
