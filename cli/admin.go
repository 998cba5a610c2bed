package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shulechat/client/auth"
	"github.com/shulechat/client/route"
	"github.com/shulechat/client/ui"
)

var (
	configsAccess = auth.Requirement{
		Roles:        []string{auth.RoleOwner, auth.RoleAdmin},
		Capabilities: []string{auth.CapManageConfigurations},
		Fallback:     route.Dashboard,
	}
	reviewsAccess = auth.Requirement{
		Roles:        []string{auth.RoleOwner, auth.RoleAdmin},
		Capabilities: []string{auth.CapReviewConversations},
		Fallback:     route.Dashboard,
	}
	rankingsAccess = auth.Requirement{
		Roles:        []string{auth.RoleOwner, auth.RoleAdmin, auth.RoleTester},
		Capabilities: []string{auth.CapViewRankings},
		Fallback:     route.Dashboard,
	}
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin and tester surfaces",
}

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "Manage intent-configuration versions",
}

var configsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List intent-configuration versions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := requireAccess(a, configsAccess); err != nil {
			return err
		}

		versions, err := a.client.ListIntentConfigs(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(versions))
		for _, v := range versions {
			active := ""
			if v.Active {
				active = "active"
			}
			rows = append(rows, []string{
				v.ID,
				strconv.Itoa(v.Version),
				active,
				v.CreatedAt.Format("2006-01-02"),
				v.Notes,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTable([]string{"ID", "Version", "Status", "Created", "Notes"}, rows))
		return nil
	},
}

var configsActivateCmd = &cobra.Command{
	Use:   "activate <version-id>",
	Short: "Make a configuration version live",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := requireAccess(a, configsAccess); err != nil {
			return err
		}

		if err := a.client.ActivateIntentConfig(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Version %s is now live.\n", args[0])
		return nil
	},
}

var reviewsTab string

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Review flagged conversations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := requireAccess(a, reviewsAccess); err != nil {
			return err
		}

		status := reviewsTab
		if status == "all" {
			status = ""
		}
		items, err := a.client.ListReviewQueue(cmd.Context(), status)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{
				it.ConversationID,
				it.Title,
				it.Status,
				it.FlaggedAt.Format("2006-01-02 15:04"),
				it.Reason,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTable([]string{"Conversation", "Title", "Status", "Flagged", "Reason"}, rows))
		return nil
	},
}

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Show the tester contribution leaderboard",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := requireAccess(a, rankingsAccess); err != nil {
			return err
		}

		ranks, err := a.client.ListTesterRankings(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(ranks))
		for _, r := range ranks {
			rows = append(rows, []string{strconv.Itoa(r.Rank), r.Name, strconv.Itoa(r.Score)})
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTable([]string{"Rank", "Tester", "Score"}, rows))
		return nil
	},
}

func init() {
	// The tab flag mirrors the sub-view selection the web surfaces keep in
	// their tab query parameter.
	reviewsCmd.Flags().StringVar(&reviewsTab, "tab", "pending", "Sub-view to show (pending, resolved, all)")

	configsCmd.AddCommand(configsListCmd)
	configsCmd.AddCommand(configsActivateCmd)
	adminCmd.AddCommand(configsCmd)
	adminCmd.AddCommand(reviewsCmd)
	adminCmd.AddCommand(rankingsCmd)
	rootCmd.AddCommand(adminCmd)
}
