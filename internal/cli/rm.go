package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete an entry",
		Long:  "Delete an entry by id, or by its position (0-based, oldest first) with --index. Unknown ids are ignored.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runRm,
	}

	cmd.Flags().IntP("index", "i", -1, "Position of the entry to delete")

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	index, _ := cmd.Flags().GetInt("index")
	if (len(args) == 0) == (index < 0) {
		exitErr("rm", fmt.Errorf("give exactly one of an id or --index"))
	}

	tr, s := openTracker(cmd)
	defer s.Close()

	var removed bool
	if len(args) > 0 {
		removed = tr.RemoveEntry(cmd.Context(), args[0])
	} else {
		removed = tr.RemoveAt(cmd.Context(), index)
	}
	warnSave(tr)

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"removed":%t,"today_total":%g}`+"\n", removed, tr.TodayTotal())
}
