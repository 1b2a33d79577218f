package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/aifa-auth/internal/logger"
	"github.com/MKhiriev/aifa-auth/internal/service"
	"github.com/MKhiriev/aifa-auth/internal/utils"
	"github.com/MKhiriev/aifa-auth/models"
)

// User-visible messages for login failures. The credential-failure text is
// one string for both "unknown user" and "wrong password"; the generic
// message deliberately says nothing about what broke.
const (
	msgMissingCredentials = "Email and password are required"
	msgInvalidEmailFormat = "Please enter a valid email address"
	msgInvalidCredentials = "Invalid email or password"
	msgTooManyAttempts    = "Too many login attempts. Please try again later."
	msgLoginFailed        = "An error occurred during login. Please try again."
)

var errorStatusMap = map[error]int{
	service.ErrMissingCredentials: http.StatusBadRequest,
	service.ErrInvalidEmailFormat: http.StatusBadRequest,
	service.ErrInvalidCredentials: http.StatusUnauthorized,
}

var errorMessageMap = map[error]string{
	service.ErrMissingCredentials: msgMissingCredentials,
	service.ErrInvalidEmailFormat: msgInvalidEmailFormat,
	service.ErrInvalidCredentials: msgInvalidCredentials,
}

// writeLoginFailure maps a login error to its HTTP response. Rate-limit
// rejections get 429 with a Retry-After header and the remaining budget;
// configuration failures surface their cause in development and the
// generic message in production.
func (h *Handler) writeLoginFailure(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var rateErr *service.RateLimitExceededError
	if errors.As(err, &rateErr) {
		log.Warn().Time("reset", rateErr.Reset).Msg("login attempt rate limited")

		remaining := rateErr.Remaining
		w.Header().Set("Retry-After", retryAfterSeconds(rateErr.Reset))
		utils.WriteJSON(w, models.LoginResult{
			Message:   msgTooManyAttempts,
			Remaining: &remaining,
		}, http.StatusTooManyRequests)
		return
	}

	var cfgErr *service.ConfigurationError
	if errors.As(err, &cfgErr) {
		log.Err(err).Msg("login failed on a backing service")

		message := msgLoginFailed
		if !h.environment.IsProduction() {
			message = cfgErr.Error()
		}
		utils.WriteJSON(w, models.LoginResult{Message: message}, http.StatusInternalServerError)
		return
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			log.Debug().Err(err).Msg("login rejected")
			utils.WriteJSON(w, models.LoginResult{Message: errorMessageMap[target]}, status)
			return
		}
	}

	log.Err(err).Msg("unexpected error occurred during user login")
	utils.WriteJSON(w, models.LoginResult{Message: msgLoginFailed}, http.StatusInternalServerError)
}

// retryAfterSeconds formats a reset instant as whole seconds for the
// Retry-After header, never less than one.
func retryAfterSeconds(reset time.Time) string {
	seconds := int(time.Until(reset).Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
