package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/water-tracker/internal/model"
)

// exportDoc is the document written by export and read by import.
type exportDoc struct {
	Goal    model.Goal    `json:"goal"`
	Entries []model.Entry `json:"entries"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries and goal as JSON",
		Long:  "Export the goal and every entry as JSON. Filter with --timeframe.",
		Run:   runExport,
	}

	cmd.Flags().StringP("timeframe", "t", "", "Only entries from the last week, month or year")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	tfStr, _ := cmd.Flags().GetString("timeframe")

	tr, s := openTracker(cmd)
	defer s.Close()

	entries := tr.Entries()
	if tfStr != "" {
		tf, err := model.ParseTimeframe(tfStr)
		if err != nil {
			exitErr("export", err)
		}
		entries = tr.FilteredEntries(tf)
	}
	if entries == nil {
		entries = []model.Entry{}
	}

	printJSON(cmd, exportDoc{Goal: tr.Goal(), Entries: entries})
}
