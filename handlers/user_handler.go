package handlers

import (
	"net/http"

	"github.com/Dosada05/football-api/middleware"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// GetCurrentUser returns the principal of the bearer token as a bare object.
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		errorResponse(w, r, http.StatusUnauthorized, "Unauthenticated.", nil)
		return
	}

	if err := writeJSON(w, http.StatusOK, user, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
