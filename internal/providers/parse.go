package providers

import (
	"encoding/json"
	"fmt"

	"github.com/contractlens/contractlens/internal/domain/audit"
)

// wireResult mirrors the response schema with pointer fields so that a
// missing required field is distinguishable from a zero value.
type wireResult struct {
	HealthScore      *int        `json:"healthScore"`
	Verdict          *string     `json:"verdict"`
	Summary          *string     `json:"summary"`
	RedFlags         *[]wireFlag `json:"redFlags"`
	NegotiationEmail *string     `json:"negotiationEmail"`
}

type wireFlag struct {
	Risk        *string `json:"risk"`
	Category    *string `json:"category"`
	Severity    *string `json:"severity"`
	Explanation *string `json:"explanation"`
	Alternative *string `json:"alternative"`
}

// parseResult decodes and validates a raw completion payload. It rejects on
// any missing or mistyped field rather than defaulting, so a schema
// violation can never produce a partially populated result.
func parseResult(payload []byte) (*audit.AnalysisResult, error) {
	var wire wireResult
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("malformed analysis payload: %w", err)
	}

	switch {
	case wire.HealthScore == nil:
		return nil, fmt.Errorf("analysis response missing healthScore")
	case wire.Verdict == nil:
		return nil, fmt.Errorf("analysis response missing verdict")
	case wire.Summary == nil:
		return nil, fmt.Errorf("analysis response missing summary")
	case wire.RedFlags == nil:
		return nil, fmt.Errorf("analysis response missing redFlags")
	case wire.NegotiationEmail == nil:
		return nil, fmt.Errorf("analysis response missing negotiationEmail")
	}

	if *wire.HealthScore < 0 || *wire.HealthScore > 100 {
		return nil, fmt.Errorf("health score %d out of range", *wire.HealthScore)
	}

	result := &audit.AnalysisResult{
		HealthScore:      *wire.HealthScore,
		Verdict:          *wire.Verdict,
		Summary:          *wire.Summary,
		RedFlags:         make([]audit.RedFlag, 0, len(*wire.RedFlags)),
		NegotiationEmail: *wire.NegotiationEmail,
	}

	for i, f := range *wire.RedFlags {
		switch {
		case f.Risk == nil:
			return nil, fmt.Errorf("red flag %d missing risk", i)
		case f.Category == nil:
			return nil, fmt.Errorf("red flag %d missing category", i)
		case f.Severity == nil:
			return nil, fmt.Errorf("red flag %d missing severity", i)
		case f.Explanation == nil:
			return nil, fmt.Errorf("red flag %d missing explanation", i)
		case f.Alternative == nil:
			return nil, fmt.Errorf("red flag %d missing alternative", i)
		}

		if !audit.KnownSeverity(*f.Severity) {
			return nil, fmt.Errorf("red flag %d has unknown severity %q", i, *f.Severity)
		}

		// The category set is closed; anything off-list folds into Other
		category := *f.Category
		if !audit.KnownCategory(category) {
			category = audit.CategoryOther
		}

		result.RedFlags = append(result.RedFlags, audit.RedFlag{
			Risk:        *f.Risk,
			Category:    category,
			Severity:    *f.Severity,
			Explanation: *f.Explanation,
			Alternative: *f.Alternative,
		})
	}

	return result, nil
}
