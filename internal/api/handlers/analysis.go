package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/contractlens/contractlens/internal/api/dto"
	"github.com/contractlens/contractlens/internal/api/middleware"
	"github.com/contractlens/contractlens/internal/domain/audit"
	"github.com/contractlens/contractlens/internal/domain/user"
	"github.com/contractlens/contractlens/internal/pkg/errors"
	"github.com/contractlens/contractlens/internal/pkg/logger"
	"github.com/contractlens/contractlens/internal/pkg/utils"
	"github.com/contractlens/contractlens/internal/pkg/validator"
)

// AnalysisHandler handles contract analysis requests
type AnalysisHandler struct {
	analyzer     audit.Analyzer
	auditService audit.Service
	userService  user.Service
	logger       *logger.Logger
	validator    *validator.Validator
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(
	analyzer audit.Analyzer,
	auditService audit.Service,
	userService user.Service,
	log *logger.Logger,
	val *validator.Validator,
) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer:     analyzer,
		auditService: auditService,
		userService:  userService,
		logger:       log,
		validator:    val,
	}
}

// Analyze runs a contract audit and records the result
// @Summary Analyze contract
// @Description Run an AI contract audit and append the result to the ledger
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeRequest true "Contract text"
// @Success 201 {object} dto.AnalyzeResponse "Recorded audit and remaining quota"
// @Failure 402 {object} utils.ErrorResponse "Starter quota reached"
// @Failure 502 {object} utils.ErrorResponse "Analysis failed"
// @Security BearerAuth
// @Router /analyze [post]
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	caller, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	// Reject over-quota callers before spending provider tokens. The
	// repository re-checks atomically when the result is recorded.
	quota, err := h.auditService.RemainingQuota(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	if !quota.Unlimited && quota.Remaining <= 0 {
		utils.WriteError(w, errors.QuotaExceeded(quota.Limit))
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), audit.Request{
		Text:       req.ContractText,
		Plan:       caller.Plan,
		FocusAreas: req.FocusAreas,
	})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	rec, err := h.auditService.Record(r.Context(), userID, req.ContractTitle, result)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	quota, err = h.auditService.RemainingQuota(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.AnalyzeResponse{
		Audit: rec,
		Quota: quota,
	})
}
