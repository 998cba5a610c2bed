package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shulechat/client/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		reader := bufio.NewReader(cmd.InOrStdin())
		fmt.Fprint(cmd.OutOrStdout(), "Email: ")
		email, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read email: %w", err)
		}
		email = strings.TrimSpace(email)

		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		token, err := a.client.Login(cmd.Context(), email, string(password))
		if err != nil {
			return err
		}
		if err := a.store.Login(token); err != nil {
			return fmt.Errorf("store token: %w", err)
		}

		// Pick up the school from the token when one is not chosen yet;
		// otherwise the user goes through school selection first.
		if a.store.ActiveSchoolID() == "" {
			if user, err := auth.DecodeUser(token); err == nil && user.SchoolID != "" {
				if err := a.store.SetActiveSchool(user.SchoolID); err != nil {
					return fmt.Errorf("store school: %w", err)
				}
			}
		}

		if a.store.ActiveSchoolID() == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Signed in. No school selected yet: run 'shulechat schools list' then 'shulechat schools use <id>'.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Signed in.")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token and school",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.store.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
