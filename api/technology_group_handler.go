package api

import (
	"net/http"

	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type technologyGroupHandler struct {
	responder Responder
	logger    zerolog.Logger
	groups    services.TechnologyGroupService
}

func newTechnologyGroupHandler(groups services.TechnologyGroupService) technologyGroupHandler {
	logger := log.With().Str("handlerName", "technologyGroupHandler").Logger()

	return technologyGroupHandler{
		responder: NewResponder(logger),
		logger:    logger,
		groups:    groups,
	}
}

// getAllTechnologyGroups lists the caller's groups with the caller's
// technologies nested inside each.
// @Summary Get all technology groups
// @Tags TechnologyGroups
// @Produce json
// @Success 200 {array} TechnologyGroupResponse
// @Router /api/technologygroups [get]
func (h technologyGroupHandler) getAllTechnologyGroups() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		groups, err := h.groups.List(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newTechnologyGroupResponses(groups))
	}
}

func (h technologyGroupHandler) getTechnologyGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		groupID, err := urlID(r, "technologyGroupID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		group, err := h.groups.Get(r.Context(), userID, groupID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newTechnologyGroupResponse(*group))
	}
}

func (h technologyGroupHandler) createTechnologyGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var in services.NameInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		group, err := h.groups.Create(r.Context(), userID, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, newTechnologyGroupResponse(*group))
	}
}

func (h technologyGroupHandler) updateTechnologyGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		groupID, err := urlID(r, "technologyGroupID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in services.NameInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.groups.Update(r.Context(), userID, groupID, in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// deleteTechnologyGroup fails with 400 while the caller has technologies in the group.
func (h technologyGroupHandler) deleteTechnologyGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		groupID, err := urlID(r, "technologyGroupID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.groups.Delete(r.Context(), userID, groupID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteNoContent(w)
	}
}
