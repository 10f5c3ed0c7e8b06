package web

import (
	"net/http"

	"desserts-ops/internal/app"
)

// createUser handles POST /api/users. Admin only. Portal accounts must carry
// a contact_id so their sessions have something to scope to.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Role      string `json:"role"`
		ContactID *int   `json:"contact_id"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	user, err := h.svc.CreateUser(r.Context(), app.CreateUserRequest{
		Username:  body.Username,
		Email:     body.Email,
		Password:  body.Password,
		Role:      body.Role,
		ContactID: body.ContactID,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	type userResponse struct {
		ID        int    `json:"id"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		Role      string `json:"role"`
		ContactID *int   `json:"contact_id,omitempty"`
	}
	writeCreated(w, userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		ContactID: user.ContactID,
	})
}
