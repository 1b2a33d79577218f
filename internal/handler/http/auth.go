package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/aifa-auth/internal/logger"
	"github.com/MKhiriev/aifa-auth/internal/utils"
	"github.com/MKhiriev/aifa-auth/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.LoginResult{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	// audit metadata never comes from the payload
	req.IPAddress = utils.ClientIP(r)
	req.UserAgent = r.UserAgent()

	session, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		h.writeLoginFailure(w, r, err)
		return
	}

	log.Debug().Int64("user_id", session.UserID).Msg("user successfully logged in")

	http.SetCookie(w, h.sessionCookie(session))
	utils.WriteJSON(w, models.LoginResult{Success: true, Message: "Login successful"}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// best-effort deletion; the cookie is cleared no matter what the
	// store says, because the user's intent is to be logged out
	if token := sessionTokenFromRequest(r); token != "" {
		h.services.AuthService.Logout(ctx, token)
	}

	http.SetCookie(w, h.expiredSessionCookie())
	utils.WriteJSON(w, models.LoginResult{Success: true, Message: "Logged out"}, http.StatusOK)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	authenticated := h.services.AuthService.IsAuthenticated(ctx, sessionTokenFromRequest(r))

	utils.WriteJSON(w, models.SessionCheckResult{Authenticated: authenticated}, http.StatusOK)
}
