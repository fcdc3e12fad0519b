package dto

// PlanDTO represents a subscription plan
type PlanDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Interval    string   `json:"interval"`
	Features    []string `json:"features"`
	IsPopular   bool     `json:"isPopular"`
	IsCurrent   bool     `json:"isCurrent"`
}

// CheckoutRequest represents a request to purchase a paid plan
type CheckoutRequest struct {
	Plan string `json:"plan" validate:"required,oneof=pro business"`
}

// CheckoutResponse confirms a completed plan change
type CheckoutResponse struct {
	Plan string   `json:"plan"`
	User *UserDTO `json:"user"`
}
