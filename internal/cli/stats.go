package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/water-tracker/internal/model"
	"github.com/rcliao/water-tracker/internal/tracker"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show intake statistics",
		Long:  "Average daily intake, goal achievement rate and best day over the last week, month or year. Only days with entries count.",
		Run:   runStats,
	}

	cmd.Flags().StringP("timeframe", "t", "week", "Timeframe: week, month or year")
	cmd.Flags().Bool("all", false, "Report every timeframe")

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	tfStr, _ := cmd.Flags().GetString("timeframe")
	all, _ := cmd.Flags().GetBool("all")

	tfs := model.Timeframes
	if !all {
		tf, err := model.ParseTimeframe(tfStr)
		if err != nil {
			exitErr("stats", err)
		}
		tfs = []model.Timeframe{tf}
	}

	tr, s := openTracker(cmd)
	defer s.Close()

	reports := make([]tracker.Report, 0, len(tfs))
	for _, tf := range tfs {
		reports = append(reports, tr.Stats(tf))
	}

	if textOutput() {
		for _, r := range reports {
			printReport(cmd, r)
		}
		return
	}
	if len(reports) == 1 {
		printJSON(cmd, reports[0])
		return
	}
	printJSON(cmd, reports)
}

func printReport(cmd *cobra.Command, r tracker.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Last %s\n", r.Timeframe)
	fmt.Fprintf(out, "  Average Daily Intake   %.0f ml\n", r.AverageIntake)
	fmt.Fprintf(out, "  Goal Achievement Rate  %d%%\n", int(r.AchievementRate*100))
	if r.BestDay != nil {
		fmt.Fprintf(out, "  Best Day               %s (%.0f ml)\n", r.BestDay.Day.Format("Jan 2, 2006"), r.BestDay.Total)
	} else {
		fmt.Fprintf(out, "  Best Day               No data\n")
	}
}
