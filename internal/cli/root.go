// Package cli implements the water-tracker CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rcliao/water-tracker/internal/auth"
	"github.com/rcliao/water-tracker/internal/config"
	"github.com/rcliao/water-tracker/internal/kv"
	"github.com/rcliao/water-tracker/internal/logging"
	"github.com/rcliao/water-tracker/internal/tracker"
)

var (
	dbPath     string
	configPath string
	logLevel   string
	formatFlag string

	cfg    *config.Config
	logger *logrus.Logger
)

// Commands that stay reachable while logged out.
var openCommands = map[string]bool{
	"login":         true,
	"logout":        true,
	"whoami":        true,
	"hash-password": true,
	"help":          true,
	"completion":    true,
}

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:              "water-tracker",
	Short:            "Track daily water intake",
	Long:             "Log drinks, follow progress toward a daily goal, review statistics and schedule reminders. SQLite-backed, single user.",
	PersistentPreRun: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $WATER_TRACKER_DB or ~/.water-tracker/water.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $WATER_TRACKER_CONFIG or ~/.water-tracker/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func setup(cmd *cobra.Command, args []string) {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger, err = logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		exitErr("configure logging", err)
	}

	if cfg.RequireLogin && !openCommands[cmd.Name()] {
		requireLogin(cmd)
	}
}

func requireLogin(cmd *cobra.Command) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	g, err := newGate(s)
	if err != nil {
		exitErr("auth", err)
	}
	sess, err := g.Session(cmd.Context())
	if err != nil {
		exitErr("auth", err)
	}
	if !sess.LoggedIn {
		exitErr("auth", fmt.Errorf("not logged in (run: water-tracker login)"))
	}
}

func getDBPath() string {
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath
	}
	return config.Default().DBPath
}

func logEntry() *logrus.Entry {
	if logger == nil {
		return logging.Discard()
	}
	return logrus.NewEntry(logger)
}

func openStore() (*kv.SQLiteStore, error) {
	return kv.NewSQLiteStore(getDBPath())
}

func newGate(s kv.Store) (*auth.Gate, error) {
	return auth.NewGate(s, cfg.Username, cfg.PasswordHash, logEntry())
}

// openTracker opens the store and loads the tracker. Callers close the store.
func openTracker(cmd *cobra.Command) (*tracker.Tracker, *kv.SQLiteStore) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	tr := tracker.New(cmd.Context(), s, tracker.WithLogger(logEntry()))
	if msg := tr.ErrorMessage(); msg != "" {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", msg, tr.Err())
	}
	return tr, s
}

// warnSave reports a failed save without failing the command; the change
// itself was applied.
func warnSave(tr *tracker.Tracker) {
	if msg := tr.ErrorMessage(); msg != "" {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", msg, tr.Err())
	}
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func textOutput() bool {
	return formatFlag == "text"
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
