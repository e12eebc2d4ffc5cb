package dto

import (
	"github.com/hugh/taskhive/internal/api/validation"
	"github.com/hugh/taskhive/internal/database/models"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Email is invalid"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

// LoginRequest accepts the address under either key; some clients send
// username where others send email.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Address() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

func (r LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Address() == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

type TokenResponse struct {
	Token string `json:"token"`
}

// SwaggerTokenResponse matches the OAuth2 password flow shape.
type SwaggerTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserSettingDTO struct {
	ID string `json:"id"`
}

type UserSubscriptionDTO struct {
	ActiveSubscription            bool `json:"active_subscription"`
	CancelSubscriptionAtPeriodEnd bool `json:"cancel_subscription_at_period_end"`
}

type UserDTO struct {
	ID           string               `json:"id"`
	Email        string               `json:"email"`
	FullName     string               `json:"full_name"`
	IsActive     bool                 `json:"is_active"`
	Settings     *UserSettingDTO      `json:"settings"`
	Subscription *UserSubscriptionDTO `json:"subscription"`
}

func ToUserDTO(u *models.User) UserDTO {
	out := UserDTO{
		ID:       u.ID.String(),
		Email:    u.Email,
		FullName: u.FullName,
		IsActive: u.IsActive,
	}
	if u.Setting != nil {
		out.Settings = &UserSettingDTO{ID: u.Setting.ID.String()}
	}
	if u.Subscription != nil {
		out.Subscription = &UserSubscriptionDTO{
			ActiveSubscription:            u.Subscription.ActiveSubscription,
			CancelSubscriptionAtPeriodEnd: u.Subscription.CancelSubscriptionAtPeriodEnd,
		}
	}
	return out
}
