package client

import "context"

// AnalyzeRequest represents a contract analysis request
type AnalyzeRequest struct {
	ContractText  string `json:"contractText"`
	ContractTitle string `json:"contractTitle,omitempty"`
	FocusAreas    string `json:"focusAreas,omitempty"`
}

// Analyze runs a contract audit and records the result in the ledger
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	var result AnalyzeResult
	if err := c.doRequest(ctx, "POST", "/api/v1/analyze", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
