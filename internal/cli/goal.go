package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/water-tracker/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "goal [target-ml]",
		Short: "Show or set the daily goal",
		Args:  cobra.MaximumNArgs(1),
		Run:   runGoal,
	}

	cmd.Flags().Float64P("preset", "p", 0, "Preset goal: 1500, 2000, 2500, 3000")

	RootCmd.AddCommand(cmd)
}

func runGoal(cmd *cobra.Command, args []string) {
	preset, _ := cmd.Flags().GetFloat64("preset")

	tr, s := openTracker(cmd)
	defer s.Close()

	if len(args) > 0 || preset != 0 {
		target, err := amountArg(args, preset, model.GoalPresets)
		if err != nil {
			exitErr("goal", err)
		}
		if err := tr.SetGoal(cmd.Context(), target); err != nil {
			exitErr("goal", err)
		}
		warnSave(tr)
	}

	g := tr.Goal()
	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "Daily goal: %.0f ml\n", g.Target)
		return
	}
	printJSON(cmd, map[string]any{
		"target": g.Target,
		"preset": model.IsPreset(model.GoalPresets, g.Target),
	})
}
