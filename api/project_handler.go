package api

import (
	"net/http"

	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  services.ProjectService
}

func newProjectHandler(projects services.ProjectService) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

// getAllProjects retrieves the caller's projects with category and technologies
// @Summary Get all projects
// @Tags Projects
// @Produce json
// @Success 200 {array} ProjectResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projects, err := h.projects.List(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newProjectResponses(projects))
	}
}

// getProject retrieves a single project
// @Summary Get a project
// @Tags Projects
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} ProjectResponse
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, err := urlID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Get(r.Context(), userID, projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newProjectResponse(*project))
	}
}

// createProject creates a project owned by the caller
// @Summary Create a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body services.ProjectInput true "Project"
// @Success 201 {object} ProjectResponse
// @Failure 400 {object} ErrorResponse "Validation failed or unowned category/technology"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var in services.ProjectInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Create(r.Context(), userID, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("projectID", project.ID).Uint("userID", userID).Msg("project created")
		h.responder.WriteCreated(w, newProjectResponse(*project))
	}
}

// updateProject replaces every field of the project, technologies included
// @Summary Update a project
// @Tags Projects
// @Accept json
// @Param projectID path int true "Project ID"
// @Param body body services.ProjectInput true "Project"
// @Success 204
// @Failure 403 {object} ErrorResponse "Project owned by another user"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, err := urlID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in services.ProjectInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.Update(r.Context(), userID, projectID, in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// deleteProject deletes a project
// @Summary Delete a project
// @Tags Projects
// @Param projectID path int true "Project ID"
// @Success 204
// @Failure 403 {object} ErrorResponse "Project owned by another user"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		projectID, err := urlID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.Delete(r.Context(), userID, projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("projectID", projectID).Uint("userID", userID).Msg("project deleted")
		h.responder.WriteNoContent(w)
	}
}
