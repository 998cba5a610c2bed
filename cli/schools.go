package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shulechat/client/auth"
	"github.com/shulechat/client/ui"
)

var schoolsCmd = &cobra.Command{
	Use:   "schools",
	Short: "List and select the active school",
}

var schoolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schools available to you",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := requireSignIn(a); err != nil {
			return err
		}

		schools, err := a.client.ListSchools(cmd.Context())
		if err != nil {
			return err
		}

		active := a.store.ActiveSchoolID()
		rows := make([][]string, 0, len(schools))
		for _, s := range schools {
			marker := ""
			if s.ID == active {
				marker = "*"
			}
			rows = append(rows, []string{marker, s.ID, s.Name})
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTable([]string{"", "ID", "Name"}, rows))
		return nil
	},
}

var schoolsUseCmd = &cobra.Command{
	Use:   "use <school-id>",
	Short: "Set the active school",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := requireSignIn(a); err != nil {
			return err
		}

		if err := a.store.SetActiveSchool(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Active school set to %s.\n", args[0])
		return nil
	},
}

// requireSignIn is the command-level auth guard.
func requireSignIn(a *app) error {
	if !a.store.IsAuthenticated() {
		return errors.New("not signed in; run 'shulechat login'")
	}
	return nil
}

// requireAccess is the command-level role/permission gate.
func requireAccess(a *app, req auth.Requirement) error {
	sess := auth.SessionFrom(a.store.Snapshot())
	switch req.Evaluate(sess) {
	case auth.DecisionAllow:
		return nil
	case auth.DecisionLogin:
		return errors.New("not signed in; run 'shulechat login'")
	default:
		return fmt.Errorf("you don't have access to this section; go back to %s", req.FallbackRoute())
	}
}

func init() {
	schoolsCmd.AddCommand(schoolsListCmd)
	schoolsCmd.AddCommand(schoolsUseCmd)
	rootCmd.AddCommand(schoolsCmd)
}
