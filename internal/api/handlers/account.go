package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/contractlens/contractlens/internal/api/dto"
	"github.com/contractlens/contractlens/internal/api/middleware"
	"github.com/contractlens/contractlens/internal/domain/user"
	"github.com/contractlens/contractlens/internal/pkg/errors"
	"github.com/contractlens/contractlens/internal/pkg/logger"
	"github.com/contractlens/contractlens/internal/pkg/utils"
	"github.com/contractlens/contractlens/internal/pkg/validator"
)

// AccountHandler handles profile and plan management requests
type AccountHandler struct {
	userService user.Service
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(userService user.Service, log *logger.Logger, val *validator.Validator) *AccountHandler {
	return &AccountHandler{
		userService: userService,
		logger:      log,
		validator:   val,
	}
}

// Update handles partial profile updates
// @Summary Update profile
// @Description Update the authenticated user's name or email
// @Tags Account
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.UserDTO "Updated profile"
// @Failure 409 {object} utils.ErrorResponse "Email already taken"
// @Security BearerAuth
// @Router /account [patch]
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), userID, user.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewUserDTO(updated))
}

// UpgradePlan handles plan tier changes
// @Summary Change plan
// @Description Set the authenticated user's plan tier
// @Tags Account
// @Accept json
// @Produce json
// @Param request body dto.UpgradePlanRequest true "Target plan"
// @Success 200 {object} dto.UserDTO "Updated profile"
// @Failure 400 {object} utils.ErrorResponse "Unknown plan"
// @Security BearerAuth
// @Router /account/plan [put]
func (h *AccountHandler) UpgradePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.UpgradePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	updated, err := h.userService.UpgradePlan(r.Context(), userID, req.Plan)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewUserDTO(updated))
}

// Delete handles account deletion
// @Summary Delete account
// @Description Remove the authenticated user's account and audit history
// @Tags Account
// @Produce json
// @Success 200 {object} utils.SuccessResponse "Account deleted"
// @Security BearerAuth
// @Router /account [delete]
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	if err := h.userService.DeleteAccount(r.Context(), userID); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	// The account is gone; end the session with it
	clearAuthCookies(w)

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Account deleted", nil)
}
