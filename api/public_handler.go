package api

import (
	"net/http"

	"github.com/p-miano/portfolio-api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// publicHandler serves the unauthenticated portfolio view.
type publicHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  services.ProjectService
}

func newPublicHandler(projects services.ProjectService) publicHandler {
	logger := log.With().Str("handlerName", "publicHandler").Logger()

	return publicHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

// getVisibleProjects lists a user's projects flagged visible
// @Summary Get a user's public projects
// @Tags Public
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {array} ProjectResponse
// @Router /api/public/users/{userID}/projects [get]
func (h publicHandler) getVisibleProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := urlID(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := h.projects.ListVisible(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newProjectResponses(projects))
	}
}
