package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/allowance/internal/cli"
	"github.com/theirongolddev/allowance/internal/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Budget summary for the active user",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	s, err := openConsoleSession()
	if err != nil {
		return err
	}
	defer s.Close()

	book := s.svc.Book()
	r := book.Active()
	p := book.Period()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ALLOWANCE  %s  %s", s.svc.Label(book.ActiveUser()), p.RangeLabel())))
	fmt.Println()
	fmt.Println(cli.RenderTable(cli.SummaryTable(report.Summarize(r))))
	fmt.Println()
	fmt.Print(cli.RenderAllocation(report.Allocation(r), 30))
	fmt.Println()

	if over := report.OverBudget(report.Categories(r)); len(over) > 0 {
		for _, row := range over {
			fmt.Printf("  ⚠ %s is over budget by %s\n", row.Name, cli.FormatYen(-row.Remaining))
		}
		fmt.Println()
	}
	if len(r.Expenses) > 0 {
		fmt.Print(cli.RenderDaily(report.Daily(r, p)))
		fmt.Println()
	}
	return nil
}
