package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List stored keys",
		Long:  "List the keys in the local store with their size and last write time.",
		Run:   runKeys,
	}

	RootCmd.AddCommand(cmd)
}

func runKeys(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	keys, err := s.Keys(cmd.Context())
	if err != nil {
		exitErr("list keys", err)
	}

	printJSON(cmd, map[string]any{
		"db_path": s.Path(),
		"keys":    keys,
	})
}
