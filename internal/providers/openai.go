package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/contractlens/contractlens/internal/config"
	"github.com/contractlens/contractlens/internal/domain/audit"
	"github.com/contractlens/contractlens/internal/domain/user"
	"github.com/contractlens/contractlens/internal/pkg/errors"
	"github.com/contractlens/contractlens/internal/pkg/logger"
	"github.com/contractlens/contractlens/internal/pkg/metrics"
)

// Analyzer implements audit.Analyzer against the OpenAI chat completion API.
// One attempt per call with an explicit timeout; no retries (a failed call is
// surfaced immediately so the caller can decide).
type Analyzer struct {
	client    *openai.Client
	fastModel string
	deepModel string
	timeout   time.Duration
	logger    *logger.Logger
}

// NewAnalyzer creates an analyzer from provider configuration
func NewAnalyzer(cfg config.AnalysisConfig, log *logger.Logger) *Analyzer {
	fastModel := cfg.FastModel
	if fastModel == "" {
		fastModel = openai.GPT4oMini
	}
	deepModel := cfg.DeepModel
	if deepModel == "" {
		deepModel = openai.GPT4o
	}

	return &Analyzer{
		client:    openai.NewClient(cfg.OpenAIAPIKey),
		fastModel: fastModel,
		deepModel: deepModel,
		timeout:   cfg.Timeout,
		logger:    log,
	}
}

// Analyze audits the contract text and returns a fully validated result.
// Any transport failure, malformed payload, or schema violation comes back
// as a single analysis error with no partial result.
func (a *Analyzer) Analyze(ctx context.Context, req audit.Request) (*audit.AnalysisResult, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	model := a.fastModel
	if premiumPlan(req.Plan) {
		model = a.deepModel
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(req.Plan, req.FocusAreas),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: "Audit this contract:\n\n" + req.Text,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		metrics.RecordAnalysis(req.Plan, "error", time.Since(start))
		a.logger.ErrorWithErr(err, "Contract analysis request failed")
		return nil, errors.AnalysisFailed(err)
	}
	if len(resp.Choices) == 0 {
		metrics.RecordAnalysis(req.Plan, "error", time.Since(start))
		return nil, errors.AnalysisFailed(fmt.Errorf("empty completion response"))
	}

	result, err := parseResult([]byte(resp.Choices[0].Message.Content))
	if err != nil {
		metrics.RecordAnalysis(req.Plan, "invalid", time.Since(start))
		a.logger.ErrorWithErr(err, "Contract analysis response rejected")
		return nil, errors.AnalysisFailed(err)
	}

	metrics.RecordAnalysis(req.Plan, "ok", time.Since(start))
	a.logger.WithFields(map[string]interface{}{
		"model":        model,
		"plan":         req.Plan,
		"health_score": result.HealthScore,
		"red_flags":    len(result.RedFlags),
		"duration_ms":  time.Since(start).Milliseconds(),
	}).Info("Contract analyzed")

	return result, nil
}

func premiumPlan(plan string) bool {
	return plan == user.PlanPro || plan == user.PlanBusiness
}

// systemPrompt frames the audit task for the model. Premium plans ask for
// deep reasoning and counter-arguments, starter for high-level risk
// identification. A business focus directive biases which clauses receive
// scrutiny.
func systemPrompt(plan, focusAreas string) string {
	var b strings.Builder

	b.WriteString("You are a world-class legal auditor specialized in protecting freelancers and small businesses.\n")
	b.WriteString("Your task is to audit the provided contract text for predatory clauses, hidden traps, and unfavorable terms.\n\n")

	fmt.Fprintf(&b, "Plan Level: %s\n", plan)
	if plan == user.PlanBusiness && strings.TrimSpace(focusAreas) != "" {
		fmt.Fprintf(&b, "SPECIFIC BUSINESS FOCUS: %s\n", focusAreas)
	}

	b.WriteString("\nInstructions:\n")
	b.WriteString("1. Calculate a Health Score from 0 to 100 where 100 is extremely safe and 0 is predatory.\n")
	b.WriteString("2. Categorize risks into: 'Payment Terms', 'Termination Clauses', 'Confidentiality', 'Intellectual Property', 'Liability', 'Governing Law', or 'Other'.\n")
	if premiumPlan(plan) {
		b.WriteString("3. Provide deep reasoning and specific legal counter-arguments.\n")
	} else {
		b.WriteString("3. Provide high-level risk identification.\n")
	}
	b.WriteString("4. Generate a professional negotiation email script.\n\n")

	b.WriteString("Respond with a single JSON object of this exact shape:\n")
	b.WriteString(`{"healthScore": <integer 0-100>, "verdict": <"Safe"|"Caution"|"Danger">, "summary": <string>, ` +
		`"redFlags": [{"risk": <string>, "category": <string>, "severity": <"High"|"Medium"|"Low">, ` +
		`"explanation": <string>, "alternative": <string>}], "negotiationEmail": <string>}`)

	return b.String()
}
