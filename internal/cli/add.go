package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/water-tracker/internal/model"
	"github.com/rcliao/water-tracker/internal/tracker"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [amount-ml]",
		Short: "Record a drink",
		Long:  "Record a drink of the given size in ml, now. Use --preset for a standard glass or bottle size.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runAdd,
	}

	cmd.Flags().Float64P("preset", "p", 0, "Preset amount: 100, 200, 250, 300, 500, 750, 1000")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	preset, _ := cmd.Flags().GetFloat64("preset")

	amount, err := amountArg(args, preset, model.AmountPresets)
	if err != nil {
		exitErr("add", err)
	}

	tr, s := openTracker(cmd)
	defer s.Close()

	// Mirrors the accessibility announcement made on every add.
	tr.Subscribe(func(ev tracker.Event) {
		if ev.Kind == tracker.EntryAdded {
			logEntry().WithField("amount", ev.Amount).Info("water intake added")
		}
	})

	id, err := tr.AddEntry(cmd.Context(), amount)
	if err != nil {
		exitErr("add", err)
	}
	warnSave(tr)

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "Added %.0f ml. Today: %.0f / %.0f ml (%d%%)\n",
			amount, tr.TodayTotal(), tr.Goal().Target, tr.BonusPercent())
		return
	}
	printJSON(cmd, map[string]any{
		"id":          id,
		"amount":      amount,
		"today_total": tr.TodayTotal(),
		"progress":    tr.DailyProgress(),
	})
}

// amountArg reads a positive amount from args, or from the preset flag which
// must be one of presets.
func amountArg(args []string, preset float64, presets []float64) (float64, error) {
	if preset != 0 {
		if len(args) > 0 {
			return 0, fmt.Errorf("give an amount or --preset, not both")
		}
		if !model.IsPreset(presets, preset) {
			return 0, fmt.Errorf("%v is not a preset (valid: %v)", preset, presets)
		}
		return preset, nil
	}
	if len(args) == 0 {
		return 0, fmt.Errorf("amount is required")
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid amount %q: must be a positive number", args[0])
	}
	return v, nil
}
