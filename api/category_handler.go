package api

import (
	"net/http"

	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type categoryHandler struct {
	responder  Responder
	logger     zerolog.Logger
	categories services.CategoryService
}

func newCategoryHandler(categories services.CategoryService) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		categories: categories,
	}
}

// getAllCategories lists the caller's categories
// @Summary Get all categories
// @Tags Categories
// @Produce json
// @Success 200 {array} CategoryResponse
// @Router /api/categories [get]
func (h categoryHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		categories, err := h.categories.List(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newCategoryResponses(categories))
	}
}

// getCategory
// @Summary Get category
// @Tags Categories
// @Produce json
// @Param categoryID path int true "Category ID"
// @Success 200 {object} CategoryResponse
// @Failure 404 {object} ErrorResponse "Missing or not associated with the caller"
// @Router /api/categories/{categoryID} [get]
func (h categoryHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		categoryID, err := urlID(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.categories.Get(r.Context(), userID, categoryID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newCategoryResponse(*category))
	}
}

// createCategory adds a category or links the caller to an existing one
// with the same normalized name.
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param body body services.NameInput true "Category name"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "Caller already has this category"
// @Router /api/categories [post]
func (h categoryHandler) createCategory() http.HandlerFunc {
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

		category, err := h.categories.Create(r.Context(), userID, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, newCategoryResponse(*category))
	}
}

// updateCategory
// @Summary Rename category
// @Tags Categories
// @Accept json
// @Param categoryID path int true "Category ID"
// @Param body body services.NameInput true "New name"
// @Success 204
// @Failure 403 {object} ErrorResponse "Caller is not associated with the category"
// @Failure 409 {object} ErrorResponse "Name already used"
// @Router /api/categories/{categoryID} [put]
func (h categoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		categoryID, err := urlID(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in services.NameInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.categories.Update(r.Context(), userID, categoryID, in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// deleteCategory
// @Summary Delete category
// @Tags Categories
// @Param categoryID path int true "Category ID"
// @Success 204
// @Failure 400 {object} ErrorResponse "Caller still has projects in the category"
// @Failure 403 {object} ErrorResponse "Caller is not associated with the category"
// @Router /api/categories/{categoryID} [delete]
func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		categoryID, err := urlID(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.categories.Delete(r.Context(), userID, categoryID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Debug().Uint("userID", userID).Uint("categoryID", categoryID).Msg("category unlinked")
		h.responder.WriteNoContent(w)
	}
}
