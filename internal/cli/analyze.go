package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/contractlens/contractlens/pkg/client"
)

func newAnalyzeCmd() *cobra.Command {
	var title, focusAreas string

	cmd := &cobra.Command{
		Use:   "analyze <contract-file>",
		Short: "Run an AI audit on a contract file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read contract: %w", err)
			}
			if strings.TrimSpace(string(text)) == "" {
				return fmt.Errorf("contract file is empty")
			}

			if title == "" {
				base := filepath.Base(args[0])
				title = strings.TrimSuffix(base, filepath.Ext(base))
			}

			fmt.Println("Analyzing contract, this can take a minute...")

			result, err := apiClient.Analyze(context.Background(), client.AnalyzeRequest{
				ContractText:  string(text),
				ContractTitle: title,
				FocusAreas:    focusAreas,
			})
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			printAuditDetail(result.Audit)

			if result.Quota != nil && !result.Quota.Unlimited {
				fmt.Printf("\nAudits remaining on your plan: %d of %d\n",
					result.Quota.Remaining, result.Quota.Limit)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "contract title (defaults to the file name)")
	cmd.Flags().StringVar(&focusAreas, "focus", "", "business focus areas (business plan only)")

	return cmd
}

func printAuditDetail(rec *client.Audit) {
	fmt.Printf("\n%s\n", rec.ContractTitle)
	fmt.Println(strings.Repeat("=", len(rec.ContractTitle)))
	fmt.Printf("Health score: %d/100  %s\n\n", rec.HealthScore, formatVerdict(rec.Verdict))
	fmt.Println(rec.Summary)

	if len(rec.RedFlags) > 0 {
		fmt.Printf("\nRed flags (%d):\n", len(rec.RedFlags))
		for _, flag := range rec.RedFlags {
			fmt.Printf("\n  %s  %s\n", formatSeverity(flag.Severity), flag.Category)
			fmt.Printf("    Risk:        %s\n", flag.Risk)
			fmt.Printf("    Why:         %s\n", flag.Explanation)
			fmt.Printf("    Suggest:     %s\n", flag.Alternative)
		}
	}

	if rec.NegotiationEmail != "" {
		fmt.Println("\nDraft negotiation email:")
		fmt.Println(strings.Repeat("-", 40))
		fmt.Println(rec.NegotiationEmail)
	}
}
