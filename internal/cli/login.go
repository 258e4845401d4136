package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/water-tracker/internal/auth"
)

func init() {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in",
		Long:  "Log in. The password is read from --password or, when omitted, from the first line of stdin.",
		Run:   runLogin,
	}
	loginCmd.Flags().StringP("username", "u", "", "Username (default: the remembered one)")
	loginCmd.Flags().StringP("password", "p", "", "Password")
	loginCmd.Flags().Bool("remember", false, "Remember the username")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		Run:   runLogout,
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the session",
		Run:   runWhoami,
	}

	hashCmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for the password_hash setting",
		Args:  cobra.ExactArgs(1),
		Run:   runHashPassword,
	}

	RootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, hashCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	remember, _ := cmd.Flags().GetBool("remember")

	if password == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			exitErr("login", auth.ErrEmptyPassword)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	g, err := newGate(s)
	if err != nil {
		exitErr("auth", err)
	}
	if username == "" {
		if prev, err := g.Session(cmd.Context()); err == nil && prev.Remember {
			username = prev.SavedUsername
		}
	}

	sess, err := g.Login(cmd.Context(), username, password, remember)
	if err != nil {
		exitErr("login", err)
	}
	printJSON(cmd, sess)
}

func runLogout(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	g, err := newGate(s)
	if err != nil {
		exitErr("auth", err)
	}
	sess, err := g.Logout(cmd.Context())
	if err != nil {
		exitErr("logout", err)
	}
	printJSON(cmd, sess)
}

func runWhoami(cmd *cobra.Command, args []string) {
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
		exitErr("whoami", err)
	}
	printJSON(cmd, sess)
}

func runHashPassword(cmd *cobra.Command, args []string) {
	if err := auth.Validate("-", args[0]); err != nil {
		exitErr("hash-password", err)
	}
	h, err := auth.HashPassword(args[0])
	if err != nil {
		exitErr("hash-password", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), h)
}
