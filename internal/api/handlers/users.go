package handlers

import (
	"net/http"

	"github.com/hugh/taskhive/internal/api/dto"
	"github.com/hugh/taskhive/internal/api/middleware"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me returns the authenticated user with settings and subscription. The Auth
// middleware already loaded the user eagerly with its relations.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserDTO(user))
}
