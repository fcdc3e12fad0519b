package client_test

import (
	"context"
	"fmt"
	"log"

	"github.com/contractlens/contractlens/pkg/client"
)

// Example demonstrates basic usage of the ContractLens client
func Example() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.contractlens.app",
	})

	ctx := context.Background()

	// Login
	resp, err := c.Login(ctx, "user@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Logged in as: %s\n", resp.User.Email)

	// List audit history
	history, err := c.ListAudits(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found %d audits\n", len(history.Audits))
}

// ExampleClient_Analyze demonstrates running a contract audit
func ExampleClient_Analyze() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.contractlens.app",
	})

	ctx := context.Background()

	// Login first
	if _, err := c.Login(ctx, "user@example.com", "password"); err != nil {
		log.Fatal(err)
	}

	result, err := c.Analyze(ctx, client.AnalyzeRequest{
		ContractTitle: "Freelance Design Agreement",
		ContractText:  "The Contractor shall deliver all work product ...",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Health score: %d (%s)\n", result.Audit.HealthScore, result.Audit.Verdict)
	for _, flag := range result.Audit.RedFlags {
		fmt.Printf("  [%s] %s: %s\n", flag.Severity, flag.Category, flag.Risk)
	}
	if !result.Quota.Unlimited {
		fmt.Printf("Audits remaining: %d of %d\n", result.Quota.Remaining, result.Quota.Limit)
	}
}

// ExampleClient_Checkout demonstrates upgrading to a paid plan
func ExampleClient_Checkout() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.contractlens.app",
	})

	ctx := context.Background()

	if _, err := c.Login(ctx, "user@example.com", "password"); err != nil {
		log.Fatal(err)
	}

	plans, err := c.ListPlans(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range plans {
		fmt.Printf("%s: $%.0f/%s\n", p.Name, p.Price, p.Interval)
	}

	upgraded, err := c.Checkout(ctx, "pro")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Now on plan: %s\n", upgraded.Plan)
}

// ExampleClient_Health demonstrates checking API health
func ExampleClient_Health() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.contractlens.app",
	})

	health, err := c.Health(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("API Status: %s\n", health.Status)
}
