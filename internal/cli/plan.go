package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "View and change your subscription plan",
	}

	cmd.AddCommand(newPlanListCmd())
	cmd.AddCommand(newPlanUpgradeCmd())

	return cmd
}

func newPlanListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := apiClient.ListPlans(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list plans: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(plans)
			}

			table := NewTable("PLAN", "PRICE", "DESCRIPTION", "CURRENT")
			for _, p := range plans {
				current := ""
				if p.IsCurrent {
					current = "yes"
				}
				table.AddRow(
					p.Name,
					fmt.Sprintf("$%.0f/%s", p.Price, p.Interval),
					truncate(p.Description, 48),
					current,
				)
			}
			table.Render()
			return nil
		},
	}
}

func newPlanUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade <pro|business>",
		Short: "Upgrade to a paid plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := apiClient.Checkout(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("upgrade failed: %w", err)
			}

			fmt.Printf("You are now on the %s plan\n", u.Plan)
			return nil
		},
	}
}
