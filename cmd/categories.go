package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/allowance/internal/cli"
	"github.com/theirongolddev/allowance/internal/report"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with budget and spending",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Add, edit or delete a category",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add NAME BUDGET",
	Short: "Add a category with a budget",
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoryAdd,
}

var categoryEditCmd = &cobra.Command{
	Use:   "edit NAME [BUDGET]",
	Short: "Change a category's budget (prompts when BUDGET is omitted)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCategoryEdit,
}

var categoryDeleteCmd = &cobra.Command{
	Use:     "delete NAME",
	Aliases: []string{"rm"},
	Short:   "Delete a category and its expenses",
	Args:    cobra.ExactArgs(1),
	RunE:    runCategoryDelete,
}

func init() {
	categoryCmd.AddCommand(categoryAddCmd, categoryEditCmd, categoryDeleteCmd)
	rootCmd.AddCommand(categoriesCmd, categoryCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	s, err := openConsoleSession()
	if err != nil {
		return err
	}
	defer s.Close()

	rows := report.Categories(s.svc.Book().Active())
	if len(rows) == 0 {
		fmt.Println("\n  No categories yet. Add one with `allowance category add NAME BUDGET`.")
		return nil
	}
	fmt.Println()
	fmt.Println(cli.RenderTable(cli.CategoryTable(rows)))
	fmt.Println()
	return nil
}

func runCategoryAdd(_ *cobra.Command, args []string) error {
	s, err := openConsoleSession()
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.svc.AddCategory(args[0], args[1])
	return err
}

func runCategoryEdit(_ *cobra.Command, args []string) error {
	s, err := openConsoleSession()
	if err != nil {
		return err
	}
	defer s.Close()

	amount := ""
	if len(args) == 2 {
		amount = args[1]
	}
	_, err = s.svc.EditCategoryBudget(args[0], amount)
	return err
}

func runCategoryDelete(_ *cobra.Command, args []string) error {
	s, err := openConsoleSession()
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.svc.DeleteCategory(args[0])
	return err
}
