package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"warpeace/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare <expected> <actual>",
	Short: "Report how many output lines match a reference output",
	Long: `Compare reads two classification files and prints the percentage of lines
that are identical, counted over the lines both files have.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pct, err := report.CompareFiles(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Percentage of matching lines: %.2f%%\n", pct)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
