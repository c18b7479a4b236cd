package api

import (
	"net/http"

	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     services.UserService
}

func newAuthHandler(users services.UserService) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
	}
}

// register creates an account
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Account data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} ErrorResponse "Validation failed or email already registered"
// @Router /api/auth/register [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.RegisterInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.users.Register(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("userID", user.ID).Msg("user registered")
		h.responder.WriteCreated(w, newUserResponse(user, false))
	}
}

// login exchanges credentials for a bearer token
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Router /api/auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.LoginInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		session, err := h.users.Login(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, LoginResponse{Token: session.Token, ExpiresAt: session.ExpiresAt})
	}
}

// me returns the authenticated user's profile
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		user, err := h.users.Profile(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newUserResponse(user, true))
	}
}
