package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audits",
		Short: "Manage your audit history",
	}

	cmd.AddCommand(newAuditListCmd())
	cmd.AddCommand(newAuditGetCmd())
	cmd.AddCommand(newAuditDeleteCmd())

	return cmd
}

func newAuditListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List audits, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := apiClient.ListAudits(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list audits: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(list)
			}

			if len(list.Audits) == 0 {
				fmt.Println("No audits yet. Run 'contractlens analyze <file>' to get started.")
				return nil
			}

			table := NewTable("ID", "TITLE", "SCORE", "VERDICT", "FLAGS", "DATE")
			for _, rec := range list.Audits {
				table.AddRow(
					rec.ID,
					truncate(rec.ContractTitle, 32),
					strconv.Itoa(rec.HealthScore),
					rec.Verdict,
					strconv.Itoa(len(rec.RedFlags)),
					rec.Timestamp.Format("2006-01-02 15:04"),
				)
			}
			table.Render()

			if list.Quota != nil && !list.Quota.Unlimited {
				fmt.Printf("\nAudits remaining on your plan: %d of %d\n",
					list.Quota.Remaining, list.Quota.Limit)
			}
			return nil
		},
	}
}

func newAuditGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one audit in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := apiClient.GetAudit(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get audit: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(rec)
			}

			printAuditDetail(rec)
			return nil
		},
	}
}

func newAuditDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one audit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.DeleteAudit(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete audit: %w", err)
			}
			fmt.Println("Audit deleted")
			return nil
		},
	}
}
