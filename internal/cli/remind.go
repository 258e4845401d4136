package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/water-tracker/internal/kv"
	"github.com/rcliao/water-tracker/internal/reminder"
)

func init() {
	remindCmd := &cobra.Command{
		Use:   "remind",
		Short: "Manage drink reminders",
	}

	addCmd := &cobra.Command{
		Use:   "add HH:MM",
		Short: "Add a daily reminder",
		Args:  cobra.ExactArgs(1),
		Run:   runRemindAdd,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		Run:   runRemindList,
	}

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		Run:   runRemindRm,
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Enable or disable a reminder",
		Args:  cobra.ExactArgs(1),
		Run:   runRemindToggle,
	}

	daysCmd := &cobra.Command{
		Use:   "days <id> <days>",
		Short: "Set the weekdays of a reminder (comma-separated, 1 = Sunday .. 7 = Saturday)",
		Args:  cobra.ExactArgs(2),
		Run:   runRemindDays,
	}

	nextCmd := &cobra.Command{
		Use:   "next",
		Short: "Show upcoming alerts",
		Run:   runRemindNext,
	}
	nextCmd.Flags().IntP("count", "n", 5, "Number of alerts")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Deliver reminders in the foreground until interrupted",
		Run:   runRemindRun,
	}

	remindCmd.AddCommand(addCmd, listCmd, rmCmd, toggleCmd, daysCmd, nextCmd, runCmd)
	RootCmd.AddCommand(remindCmd)
}

func openReminders(cmd *cobra.Command) (*reminder.Manager, *kv.SQLiteStore) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	m, err := reminder.NewManager(cmd.Context(), s, logEntry())
	if err != nil {
		s.Close()
		exitErr("load reminders", err)
	}
	return m, s
}

// parseClock parses "HH:MM" in 24-hour time.
func parseClock(s string) (int, int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid time %q (use HH:MM)", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour %q", hh)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute %q", mm)
	}
	return h, m, nil
}

func runRemindAdd(cmd *cobra.Command, args []string) {
	h, m, err := parseClock(args[0])
	if err != nil {
		exitErr("remind add", err)
	}

	mgr, s := openReminders(cmd)
	defer s.Close()

	r, err := mgr.Add(cmd.Context(), h, m)
	if err != nil {
		exitErr("remind add", err)
	}
	printJSON(cmd, r)
}

func runRemindList(cmd *cobra.Command, args []string) {
	mgr, s := openReminders(cmd)
	defer s.Close()

	list := mgr.List()
	if textOutput() {
		for _, r := range list {
			state := "on "
			if !r.Enabled {
				state = "off"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  days=%v  %s\n", r.FormattedTime(), state, r.Days, r.ID)
		}
		return
	}
	printJSON(cmd, list)
}

func runRemindRm(cmd *cobra.Command, args []string) {
	mgr, s := openReminders(cmd)
	defer s.Close()

	removed, err := mgr.Remove(cmd.Context(), args[0])
	if err != nil {
		exitErr("remind rm", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"removed":%t,"id":%q}`+"\n", removed, args[0])
}

func runRemindToggle(cmd *cobra.Command, args []string) {
	mgr, s := openReminders(cmd)
	defer s.Close()

	r, err := mgr.Toggle(cmd.Context(), args[0])
	if err != nil {
		exitErr("remind toggle", err)
	}
	printJSON(cmd, r)
}

func runRemindDays(cmd *cobra.Command, args []string) {
	var days []int
	for _, part := range strings.Split(args[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			exitErr("remind days", fmt.Errorf("invalid day %q", part))
		}
		days = append(days, d)
	}

	mgr, s := openReminders(cmd)
	defer s.Close()

	r, err := mgr.SetDays(cmd.Context(), args[0], days)
	if err != nil {
		exitErr("remind days", err)
	}
	printJSON(cmd, r)
}

func runRemindNext(cmd *cobra.Command, args []string) {
	count, _ := cmd.Flags().GetInt("count")

	mgr, s := openReminders(cmd)
	defer s.Close()

	alerts, err := reminder.Upcoming(mgr.List(), time.Now(), count)
	if err != nil {
		exitErr("remind next", err)
	}
	if alerts == nil {
		alerts = []reminder.Alert{}
	}
	printJSON(cmd, alerts)
}

func runRemindRun(cmd *cobra.Command, args []string) {
	mgr, s := openReminders(cmd)
	defer s.Close()

	sched := reminder.NewScheduler(mgr, reminder.WriterNotifier{W: cmd.OutOrStdout()}, time.Local)
	n, err := sched.Apply()
	if err != nil {
		exitErr("schedule reminders", err)
	}
	fmt.Fprintf(os.Stderr, "scheduled %d alerts; press Ctrl-C to stop\n", n)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched.Start()
	go func() {
		if err := sched.Watch(ctx, s.Path()); err != nil {
			logEntry().WithError(err).Warn("reminder changes will not be picked up")
		}
	}()

	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sched.Stop(stopCtx)
}
