package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hugh/taskhive/internal/api/dto"
	"github.com/hugh/taskhive/internal/api/middleware"
	"github.com/hugh/taskhive/internal/auth"
)

type AuthHandler struct {
	authService auth.Authenticator
}

func NewAuthHandler(authService auth.Authenticator) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	_, err := h.authService.Register(r.Context(), auth.RegisterInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})

	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "Email already exist"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Registration failed"})
		return
	}

	writeJSON(w, http.StatusCreated, dto.SuccessResponse{Message: "Success!"})
}

// Token is the JSON login endpoint. Unknown email, wrong password, and a
// deactivated account all produce the same response.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	result, err := h.login(w, r, req.Address(), req.Password)
	if err != nil {
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: result.Envelope})
}

// SwaggerToken is the OAuth2-password-flow-compatible variant: form-encoded
// username/password in, access_token/token_type out.
func (h *AuthHandler) SwaggerToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Username and password are required"})
		return
	}

	result, err := h.login(w, r, username, password)
	if err != nil {
		return
	}

	writeJSON(w, http.StatusOK, dto.SwaggerTokenResponse{
		AccessToken: result.Envelope,
		TokenType:   "bearer",
	})
}

// login runs the shared credential check and writes the failure response
// itself so both token endpoints stay uniform.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, email, password string) (*auth.LoginResult, error) {
	result, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
		} else {
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Login failed"})
		}
		return nil, err
	}
	return result, nil
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.authService.Logout(r.Context(), session.Token); err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Logout failed"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Success!"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
