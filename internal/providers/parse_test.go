package providers

import (
	"strings"
	"testing"

	"github.com/contractlens/contractlens/internal/domain/audit"
	"github.com/contractlens/contractlens/internal/domain/user"
)

const validPayload = `{
	"healthScore": 62,
	"verdict": "Caution",
	"summary": "Several one-sided clauses favor the client.",
	"redFlags": [
		{
			"risk": "Net-90 payment terms",
			"category": "Payment Terms",
			"severity": "High",
			"explanation": "Payment is deferred far beyond industry norms.",
			"alternative": "Net-30 with late fees after 15 days."
		}
	],
	"negotiationEmail": "Hi, I reviewed the agreement and would like to discuss a few terms."
}`

func TestParseResult(t *testing.T) {
	result, err := parseResult([]byte(validPayload))
	if err != nil {
		t.Fatalf("parseResult() error = %v", err)
	}

	if result.HealthScore != 62 {
		t.Errorf("parseResult() healthScore = %d, want 62", result.HealthScore)
	}
	if result.Verdict != audit.VerdictCaution {
		t.Errorf("parseResult() verdict = %q, want %q", result.Verdict, audit.VerdictCaution)
	}
	if len(result.RedFlags) != 1 {
		t.Fatalf("parseResult() red flags = %d, want 1", len(result.RedFlags))
	}
	flag := result.RedFlags[0]
	if flag.Category != audit.CategoryPaymentTerms {
		t.Errorf("parseResult() category = %q, want %q", flag.Category, audit.CategoryPaymentTerms)
	}
	if flag.Severity != audit.SeverityHigh {
		t.Errorf("parseResult() severity = %q, want %q", flag.Severity, audit.SeverityHigh)
	}
	if flag.Alternative == "" {
		t.Error("parseResult() dropped the alternative clause")
	}
}

func TestParseResultRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "malformed json",
			payload: `{"healthScore": 62,`,
		},
		{
			name:    "missing health score",
			payload: `{"verdict":"Safe","summary":"ok","redFlags":[],"negotiationEmail":"hi"}`,
		},
		{
			name:    "missing verdict",
			payload: `{"healthScore":90,"summary":"ok","redFlags":[],"negotiationEmail":"hi"}`,
		},
		{
			name:    "missing summary",
			payload: `{"healthScore":90,"verdict":"Safe","redFlags":[],"negotiationEmail":"hi"}`,
		},
		{
			name:    "missing red flags",
			payload: `{"healthScore":90,"verdict":"Safe","summary":"ok","negotiationEmail":"hi"}`,
		},
		{
			name:    "missing negotiation email",
			payload: `{"healthScore":90,"verdict":"Safe","summary":"ok","redFlags":[]}`,
		},
		{
			name:    "score above range",
			payload: `{"healthScore":101,"verdict":"Safe","summary":"ok","redFlags":[],"negotiationEmail":"hi"}`,
		},
		{
			name:    "score below range",
			payload: `{"healthScore":-1,"verdict":"Safe","summary":"ok","redFlags":[],"negotiationEmail":"hi"}`,
		},
		{
			name: "red flag missing explanation",
			payload: `{"healthScore":50,"verdict":"Caution","summary":"ok","redFlags":[
				{"risk":"r","category":"Liability","severity":"Low","alternative":"a"}],"negotiationEmail":"hi"}`,
		},
		{
			name: "red flag unknown severity",
			payload: `{"healthScore":50,"verdict":"Caution","summary":"ok","redFlags":[
				{"risk":"r","category":"Liability","severity":"Critical","explanation":"e","alternative":"a"}],"negotiationEmail":"hi"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseResult([]byte(tt.payload))
			if err == nil {
				t.Fatal("parseResult() accepted an invalid payload")
			}
			if result != nil {
				t.Error("parseResult() returned a partial result alongside an error")
			}
		})
	}
}

func TestParseResultNormalizesUnknownCategory(t *testing.T) {
	payload := `{"healthScore":50,"verdict":"Caution","summary":"ok","redFlags":[
		{"risk":"r","category":"Exotic Clause","severity":"Low","explanation":"e","alternative":"a"}],"negotiationEmail":"hi"}`

	result, err := parseResult([]byte(payload))
	if err != nil {
		t.Fatalf("parseResult() error = %v", err)
	}
	if result.RedFlags[0].Category != audit.CategoryOther {
		t.Errorf("parseResult() category = %q, want %q", result.RedFlags[0].Category, audit.CategoryOther)
	}
}

func TestSystemPrompt(t *testing.T) {
	tests := []struct {
		name        string
		plan        string
		focusAreas  string
		wantContain []string
		wantAbsent  []string
	}{
		{
			name:        "starter gets high-level instructions",
			plan:        user.PlanStarter,
			wantContain: []string{"high-level risk identification"},
			wantAbsent:  []string{"counter-arguments", "SPECIFIC BUSINESS FOCUS"},
		},
		{
			name:        "pro gets deep reasoning",
			plan:        user.PlanPro,
			wantContain: []string{"deep reasoning", "counter-arguments"},
			wantAbsent:  []string{"SPECIFIC BUSINESS FOCUS"},
		},
		{
			name:        "business focus is woven into the prompt",
			plan:        user.PlanBusiness,
			focusAreas:  "IP assignment and non-compete scope",
			wantContain: []string{"SPECIFIC BUSINESS FOCUS: IP assignment and non-compete scope", "deep reasoning"},
		},
		{
			name:       "pro cannot set focus areas",
			plan:       user.PlanPro,
			focusAreas: "anything",
			wantAbsent: []string{"SPECIFIC BUSINESS FOCUS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := systemPrompt(tt.plan, tt.focusAreas)
			for _, s := range tt.wantContain {
				if !strings.Contains(prompt, s) {
					t.Errorf("systemPrompt() missing %q", s)
				}
			}
			for _, s := range tt.wantAbsent {
				if strings.Contains(prompt, s) {
					t.Errorf("systemPrompt() unexpectedly contains %q", s)
				}
			}
		})
	}
}
