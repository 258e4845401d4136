package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import entries from JSON",
		Long:  "Import entries from JSON (file or stdin). Accepts the document produced by export or a bare array of entries. Entries are appended; the goal is only replaced with --goal.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	cmd.Flags().Bool("goal", false, "Also replace the daily goal with the exported one")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	withGoal, _ := cmd.Flags().GetBool("goal")

	var data []byte
	var err error
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read input", err)
	}

	var doc exportDoc
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &doc.Entries)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		exitErr("parse json", err)
	}

	tr, s := openTracker(cmd)
	defer s.Close()

	imported := tr.Import(cmd.Context(), doc.Entries)
	if withGoal && doc.Goal.Target > 0 {
		if err := tr.SetGoal(cmd.Context(), doc.Goal.Target); err != nil {
			exitErr("import goal", err)
		}
	}
	warnSave(tr)

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", imported)
}
