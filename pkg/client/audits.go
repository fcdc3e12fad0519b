package client

import "context"

// ListAudits returns the caller's audit history, most recent first
func (c *Client) ListAudits(ctx context.Context) (*AuditList, error) {
	var list AuditList
	if err := c.doRequest(ctx, "GET", "/api/v1/audits", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetAudit retrieves one audit by ID
func (c *Client) GetAudit(ctx context.Context, id string) (*Audit, error) {
	var rec Audit
	if err := c.doRequest(ctx, "GET", "/api/v1/audits/"+id, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteAudit removes one audit by ID
func (c *Client) DeleteAudit(ctx context.Context, id string) error {
	return c.doRequest(ctx, "DELETE", "/api/v1/audits/"+id, nil, nil)
}
