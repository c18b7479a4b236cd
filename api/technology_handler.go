package api

import (
	"net/http"

	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type technologyHandler struct {
	responder    Responder
	logger       zerolog.Logger
	technologies services.TechnologyService
}

func newTechnologyHandler(technologies services.TechnologyService) technologyHandler {
	logger := log.With().Str("handlerName", "technologyHandler").Logger()

	return technologyHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		technologies: technologies,
	}
}

func (h technologyHandler) getAllTechnologies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		technologies, err := h.technologies.List(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newTechnologyResponses(technologies))
	}
}

func (h technologyHandler) getTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		technologyID, err := urlID(r, "technologyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		technology, err := h.technologies.Get(r.Context(), userID, technologyID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newTechnologyResponse(*technology))
	}
}

// createTechnology requires the target group to be one of the caller's groups.
func (h technologyHandler) createTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var in services.TechnologyInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		technology, err := h.technologies.Create(r.Context(), userID, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, newTechnologyResponse(*technology))
	}
}

func (h technologyHandler) updateTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		technologyID, err := urlID(r, "technologyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in services.TechnologyInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.technologies.Update(r.Context(), userID, technologyID, in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteNoContent(w)
	}
}

func (h technologyHandler) deleteTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		technologyID, err := urlID(r, "technologyID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.technologies.Delete(r.Context(), userID, technologyID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteNoContent(w)
	}
}
