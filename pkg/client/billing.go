package client

import "context"

// ListPlans returns the subscription plan catalog
func (c *Client) ListPlans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := c.doRequest(ctx, "GET", "/api/v1/billing/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Checkout purchases a paid plan for the authenticated user
func (c *Client) Checkout(ctx context.Context, plan string) (*User, error) {
	req := map[string]string{"plan": plan}

	var resp struct {
		Plan string `json:"plan"`
		User *User  `json:"user"`
	}
	if err := c.doRequest(ctx, "POST", "/api/v1/billing/checkout", req, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}
