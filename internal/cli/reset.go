package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:    "reset",
		Short:  "Delete every entry and restore the default goal",
		Hidden: true,
		Run:    runReset,
	}

	cmd.Flags().Bool("yes", false, "Confirm the reset (irreversible)")

	RootCmd.AddCommand(cmd)
}

func runReset(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		exitErr("reset", fmt.Errorf("refusing to delete all data without --yes"))
	}

	tr, s := openTracker(cmd)
	defer s.Close()

	tr.Reset(cmd.Context())
	warnSave(tr)

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"goal":%g}`+"\n", tr.Goal().Target)
}
