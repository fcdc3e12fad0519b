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

// BillingHandler handles plan catalog and checkout requests
type BillingHandler struct {
	userService user.Service
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(userService user.Service, log *logger.Logger, val *validator.Validator) *BillingHandler {
	return &BillingHandler{
		userService: userService,
		logger:      log,
		validator:   val,
	}
}

func planCatalog(currentPlan string) []dto.PlanDTO {
	return []dto.PlanDTO{
		{
			ID:          user.PlanStarter,
			Name:        "Starter",
			Description: "Try ContractLens on your next few contracts",
			Price:       0,
			Currency:    "USD",
			Interval:    "month",
			Features: []string{
				"3 contract audits",
				"Health score and verdict",
				"Red flag detection",
			},
			IsCurrent: currentPlan == user.PlanStarter,
		},
		{
			ID:          user.PlanPro,
			Name:        "Pro",
			Description: "Unlimited audits with deep legal reasoning",
			Price:       19,
			Currency:    "USD",
			Interval:    "month",
			Features: []string{
				"Unlimited contract audits",
				"Deep reasoning and counter-arguments",
				"Negotiation email drafts",
			},
			IsPopular: true,
			IsCurrent: currentPlan == user.PlanPro,
		},
		{
			ID:          user.PlanBusiness,
			Name:        "Business",
			Description: "Everything in Pro, tuned to your business",
			Price:       49,
			Currency:    "USD",
			Interval:    "month",
			Features: []string{
				"Everything in Pro",
				"Custom business focus areas",
				"Priority support",
			},
			IsCurrent: currentPlan == user.PlanBusiness,
		},
	}
}

// ListPlans returns the plan catalog
// @Summary List plans
// @Description List available subscription plans
// @Tags Billing
// @Produce json
// @Success 200 {array} dto.PlanDTO "Available plans"
// @Security BearerAuth
// @Router /billing/plans [get]
func (h *BillingHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	currentPlan := ""
	if userID, ok := middleware.GetUserID(r); ok {
		if u, err := h.userService.GetByID(r.Context(), userID); err == nil {
			currentPlan = u.Plan
		}
	}

	utils.WriteSuccess(w, http.StatusOK, planCatalog(currentPlan))
}

// Checkout upgrades the caller to a paid plan
// @Summary Checkout
// @Description Purchase a paid plan for the authenticated user
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Target plan"
// @Success 200 {object} dto.CheckoutResponse "Plan activated"
// @Failure 400 {object} utils.ErrorResponse "Unknown plan"
// @Security BearerAuth
// @Router /billing/checkout [post]
func (h *BillingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	// No payment processor is wired up. Checkout activates the plan
	// directly; card collection happens upstream.
	updated, err := h.userService.UpgradePlan(r.Context(), userID, req.Plan)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"plan":    req.Plan,
	}).Info("Plan purchased")

	utils.WriteSuccess(w, http.StatusOK, dto.CheckoutResponse{
		Plan: updated.Plan,
		User: dto.NewUserDTO(updated),
	})
}
