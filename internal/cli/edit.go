package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit <id> <amount-ml>",
		Short: "Change the amount of an entry",
		Args:  cobra.ExactArgs(2),
		Run:   runEdit,
	}

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		exitErr("edit", fmt.Errorf("invalid amount %q", args[1]))
	}

	tr, s := openTracker(cmd)
	defer s.Close()

	updated, err := tr.UpdateEntryAmount(cmd.Context(), args[0], amount)
	if err != nil {
		exitErr("edit", err)
	}
	warnSave(tr)

	if !updated {
		fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"updated":false,"id":%q}`+"\n", args[0])
		return
	}
	e, _ := tr.Entry(args[0])
	printJSON(cmd, e)
}
