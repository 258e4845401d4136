package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/water-tracker/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's progress",
		Run:   runToday,
	}

	RootCmd.AddCommand(cmd)
}

func runToday(cmd *cobra.Command, args []string) {
	tr, s := openTracker(cmd)
	defer s.Close()

	total := tr.Refresh()
	entries := tr.TodayEntries()
	if entries == nil {
		entries = []model.Entry{}
	}

	if textOutput() {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Today: %.0f / %.0f ml (%d%%)\n", total, tr.Goal().Target, tr.BonusPercent())
		for _, e := range entries {
			fmt.Fprintf(out, "  %s  %6.0f ml  %s\n", e.Timestamp.Local().Format("15:04"), e.Amount, e.ID)
		}
		return
	}
	printJSON(cmd, map[string]any{
		"total":    total,
		"goal":     tr.Goal().Target,
		"progress": tr.DailyProgress(),
		"percent":  tr.BonusPercent(),
		"entries":  entries,
	})
}
