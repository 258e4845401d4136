package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/water-tracker/internal/model"
	"github.com/rcliao/water-tracker/internal/profile"
)

func init() {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Personal profile and recommended goal",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the profile and its recommended daily intake",
		Run:   runProfileShow,
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Run:   runProfileSet,
	}
	setCmd.Flags().Float64("weight", 0, "Weight in kg")
	setCmd.Flags().Float64("height", 0, "Height in cm")
	setCmd.Flags().Int("age", 0, "Age in years")
	setCmd.Flags().String("gender", "", "Gender: male, female, unspecified")
	setCmd.Flags().String("activity", "", "Activity level: sedentary, light, moderate, active, extreme")

	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Set the daily goal to the recommended intake",
		Run:   runProfileApply,
	}

	profileCmd.AddCommand(showCmd, setCmd, applyCmd)
	RootCmd.AddCommand(profileCmd)
}

type profileView struct {
	model.UserProfile
	Recommended float64 `json:"recommended"`
}

func runProfileShow(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := profile.Load(cmd.Context(), s)
	if err != nil {
		logEntry().WithError(err).Warn("using default profile")
	}
	printProfile(cmd, p)
}

func runProfileSet(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := profile.Load(cmd.Context(), s)
	if err != nil {
		logEntry().WithError(err).Warn("replacing unreadable profile")
	}

	flags := cmd.Flags()
	if flags.Changed("weight") {
		p.Weight, _ = flags.GetFloat64("weight")
	}
	if flags.Changed("height") {
		p.Height, _ = flags.GetFloat64("height")
	}
	if flags.Changed("age") {
		p.Age, _ = flags.GetInt("age")
	}
	if flags.Changed("gender") {
		v, _ := flags.GetString("gender")
		if p.Gender, err = model.ParseGender(v); err != nil {
			exitErr("profile", err)
		}
	}
	if flags.Changed("activity") {
		v, _ := flags.GetString("activity")
		if p.ActivityLevel, err = model.ParseActivityLevel(v); err != nil {
			exitErr("profile", err)
		}
	}

	if err := profile.Save(cmd.Context(), s, p); err != nil {
		exitErr("save profile", err)
	}
	printProfile(cmd, p)
}

func runProfileApply(cmd *cobra.Command, args []string) {
	tr, s := openTracker(cmd)
	defer s.Close()

	p, err := profile.Load(cmd.Context(), s)
	if err != nil {
		logEntry().WithError(err).Warn("using default profile")
	}
	target, err := profile.ApplyRecommended(cmd.Context(), tr, p)
	if err != nil {
		exitErr("apply", err)
	}
	warnSave(tr)

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"goal":%g}`+"\n", target)
}

func printProfile(cmd *cobra.Command, p model.UserProfile) {
	rec := profile.RecommendedIntake(p)
	if textOutput() {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Age             %d years\n", p.Age)
		fmt.Fprintf(out, "Weight          %.0f kg\n", p.Weight)
		fmt.Fprintf(out, "Height          %.0f cm\n", p.Height)
		fmt.Fprintf(out, "Gender          %s\n", p.Gender.Label())
		fmt.Fprintf(out, "Activity Level  %s\n", p.ActivityLevel.Label())
		fmt.Fprintf(out, "Recommended     %.0f ml\n", rec)
		return
	}
	printJSON(cmd, profileView{UserProfile: p, Recommended: rec})
}
