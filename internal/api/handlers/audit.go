package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/contractlens/contractlens/internal/api/dto"
	"github.com/contractlens/contractlens/internal/api/middleware"
	"github.com/contractlens/contractlens/internal/domain/audit"
	"github.com/contractlens/contractlens/internal/pkg/errors"
	"github.com/contractlens/contractlens/internal/pkg/logger"
	"github.com/contractlens/contractlens/internal/pkg/utils"
	"github.com/contractlens/contractlens/internal/pkg/validator"
)

// AuditHandler handles audit ledger requests
type AuditHandler struct {
	auditService audit.Service
	logger       *logger.Logger
	validator    *validator.Validator
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService audit.Service, log *logger.Logger, val *validator.Validator) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       log,
		validator:    val,
	}
}

// List returns the caller's audit history
// @Summary List audits
// @Description List the authenticated user's audits, most recent first
// @Tags Audits
// @Produce json
// @Success 200 {object} dto.AuditListResponse "Audit history and quota"
// @Security BearerAuth
// @Router /audits [get]
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	records, err := h.auditService.List(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	quota, err := h.auditService.RemainingQuota(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.AuditListResponse{
		Audits: records,
		Quota:  quota,
	})
}

// Record persists an analysis result
// @Summary Record audit
// @Description Append an analysis result to the caller's ledger
// @Tags Audits
// @Accept json
// @Produce json
// @Param request body dto.RecordAuditRequest true "Result to record"
// @Success 201 {object} audit.Record "Recorded audit"
// @Failure 402 {object} utils.ErrorResponse "Starter quota reached"
// @Security BearerAuth
// @Router /audits [post]
func (h *AuditHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.RecordAuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	rec, err := h.auditService.Record(r.Context(), userID, req.ContractTitle, req.Result)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, rec)
}

// Get returns one audit
// @Summary Get audit
// @Description Retrieve one of the caller's audits by ID
// @Tags Audits
// @Produce json
// @Param id path string true "Audit ID"
// @Success 200 {object} audit.Record "Audit"
// @Failure 404 {object} utils.ErrorResponse "Audit not found"
// @Security BearerAuth
// @Router /audits/{id} [get]
func (h *AuditHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	rec, err := h.auditService.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, rec)
}

// Delete removes one audit
// @Summary Delete audit
// @Description Remove one of the caller's audits by ID
// @Tags Audits
// @Produce json
// @Param id path string true "Audit ID"
// @Success 200 {object} utils.SuccessResponse "Audit deleted"
// @Failure 404 {object} utils.ErrorResponse "Audit not found"
// @Security BearerAuth
// @Router /audits/{id} [delete]
func (h *AuditHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	if err := h.auditService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Audit deleted", nil)
}
