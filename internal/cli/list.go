package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/water-tracker/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Run:   runList,
	}

	cmd.Flags().StringP("timeframe", "t", "", "Only entries from the last week, month or year")
	cmd.Flags().IntP("limit", "l", 0, "Max results, newest kept (0 = all)")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	tfStr, _ := cmd.Flags().GetString("timeframe")
	limit, _ := cmd.Flags().GetInt("limit")

	tr, s := openTracker(cmd)
	defer s.Close()

	entries := tr.Entries()
	if tfStr != "" {
		tf, err := model.ParseTimeframe(tfStr)
		if err != nil {
			exitErr("list", err)
		}
		entries = tr.FilteredEntries(tf)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	if entries == nil {
		entries = []model.Entry{}
	}

	if textOutput() {
		for i, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s  %6.0f ml  %s\n", i, e.Timestamp.Local().Format("2006-01-02 15:04"), e.Amount, e.ID)
		}
		return
	}
	printJSON(cmd, entries)
}
