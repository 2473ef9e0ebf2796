package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/cvbuilder/api/http/presenter"
	"github.com/artem13815/cvbuilder/pkg/form"
)

// FormHandler exposes the flat CV form and server-held drafts.
type FormHandler struct {
	useCase form.UseCase
}

func NewFormHandler(useCase form.UseCase) *FormHandler {
	return &FormHandler{useCase: useCase}
}

type cellRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type itemRequest struct {
	Value string `json:"value"`
}

// Get returns the persisted CV as a flat form.
// @Summary CV as form
// @Tags    form
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.DataResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/cv/form [get]
func (h *FormHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	st, err := h.useCase.Load(c.Context(), userID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Data(c, http.StatusOK, st, "Current CV form")
}

// Submit replaces the CV with the submitted form.
// @Summary Submit form
// @Tags    form
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body form.State true "flat form"
// @Success 200 {object} presenter.DataResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /users/cv/form [put]
func (h *FormHandler) Submit(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	var st form.State
	if err := c.BodyParser(&st); err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid JSON payload")
	}
	p, err := h.useCase.Submit(c.Context(), userID, st)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Data(c, http.StatusOK, p.CV, "CV updated successfully")
}

// OpenDraft starts a draft from the persisted CV.
// @Summary Open draft
// @Tags    draft
// @Produce json
// @Security BearerAuth
// @Success 201 {object} presenter.DataResponse
// @Router  /users/cv/draft [post]
func (h *FormHandler) OpenDraft(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	st, err := h.useCase.OpenDraft(c.Context(), userID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Data(c, http.StatusCreated, st, "Draft opened")
}

// GetDraft returns the current draft.
// @Summary Current draft
// @Tags    draft
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.DataResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/cv/draft [get]
func (h *FormHandler) GetDraft(c *fiber.Ctx) error {
	return h.draft(c, func(c *fiber.Ctx) (form.State, error) {
		return h.useCase.GetDraft(c.Context(), mustUser(c))
	})
}

// DiscardDraft drops the current draft.
// @Summary Discard draft
// @Tags    draft
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/cv/draft [delete]
func (h *FormHandler) DiscardDraft(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	if err := h.useCase.DiscardDraft(c.Context(), userID); err != nil {
		return presenter.FromError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// AppendEntry adds a blank row to a section.
// @Summary Append row
// @Tags    draft
// @Produce json
// @Security BearerAuth
// @Param   section path string true "education or work"
// @Success 200 {object} presenter.DataResponse
// @Router  /users/cv/draft/sections/{section}/entries [post]
func (h *FormHandler) AppendEntry(c *fiber.Ctx) error {
	return h.draft(c, func(c *fiber.Ctx) (form.State, error) {
		return h.useCase.AppendEntry(c.Context(), mustUser(c), form.Section(c.Params("section")))
	})
}

// RemoveLastEntry drops the last row of a section.
// @Summary Remove last row
// @Tags    draft
// @Produce json
// @Security BearerAuth
// @Param   section path string true "education or work"
// @Success 200 {object} presenter.DataResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /users/cv/draft/sections/{section}/entries/last [delete]
func (h *FormHandler) RemoveLastEntry(c *fiber.Ctx) error {
	return h.draft(c, func(c *fiber.Ctx) (form.State, error) {
		return h.useCase.RemoveLastEntry(c.Context(), mustUser(c), form.Section(c.Params("section")))
	})
}

// RemoveEntry drops one row of a section.
// @Summary Remove row
// @Tags    draft
// @Produce json
// @Security BearerAuth
// @Param   section path string true "education or work"
// @Param   index   path int    true "row index"
// @Success 200 {object} presenter.DataResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /users/cv/draft/sections/{section}/entries/{index} [delete]
func (h *FormHandler) RemoveEntry(c *fiber.Ctx) error {
	return h.draft(c, func(c *fiber.Ctx) (form.State, error) {
		i, err := indexParam(c)
		if err != nil {
			return form.State{}, err
		}
		return h.useCase.RemoveEntry(c.Context(), mustUser(c), form.Section(c.Params("section")), i)
	})
}

// UpdateEntry sets one cell of a row.
// @Summary Update cell
// @Tags    draft
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   section path string      true "education or work"
// @Param   index   path int         true "row index"
// @Param   input   body cellRequest true "column and value"
// @Success 200 {object} presenter.DataResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /users/cv/draft/sections/{section}/entries/{index} [patch]
func (h *FormHandler) UpdateEntry(c *fiber.Ctx) error {
	return h.draft(c, func(c *fiber.Ctx) (form.State, error) {
		i, err := indexParam(c)
		if err != nil {
			return form.State{}, err
		}
		var req cellRequest
		if err := c.BodyParser(&req); err != nil {
			return form.State{}, fiber.NewError(fiber.StatusBadRequest, "invalid JSON payload")
		}
		return h.useCase.UpdateField(c.Context(), mustUser(c), form.Section(c.Params("section")), req.Field, i, req.Value)
	})
}

// SetFields sets scalar fields of the draft.
// @Summary Set fields
// @Tags    draft
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body map[string]string true "field name to value"
// @Success 200 {object} presenter.DataResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /users/cv/draft/fields [patch]
func (h *FormHandler) SetFields(c *fiber.Ctx) error {
	return h.draft(c, func(c *fiber.Ctx) (form.State, error) {
		var values map[string]string
		if err := c.BodyParser(&values); err != nil {
			return form.State{}, fiber.NewError(fiber.StatusBadRequest, "invalid JSON payload")
		}
		return h.useCase.SetFields(c.Context(), mustUser(c), values)
	})
}

// AppendItem appends to skills or languages.
// @Summary Append list item
// @Tags    draft
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   list  path string      true "skills or languages"
// @Param   input body itemRequest false "value, empty by default"
// @Success 200 {object} presenter.DataResponse
// @Router  /users/cv/draft/lists/{list}/items [post]
func (h *FormHandler) AppendItem(c *fiber.Ctx) error {
	return h.draft(c, func(c *fiber.Ctx) (form.State, error) {
		var req itemRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return form.State{}, fiber.NewError(fiber.StatusBadRequest, "invalid JSON payload")
			}
		}
		return h.useCase.AppendItem(c.Context(), mustUser(c), form.List(c.Params("list")), req.Value)
	})
}

// RemoveItem removes one list item.
// @Summary Remove list item
// @Tags    draft
// @Produce json
// @Security BearerAuth
// @Param   list  path string true "skills or languages"
// @Param   index path int    true "item index"
// @Success 200 {object} presenter.DataResponse
// @Router  /users/cv/draft/lists/{list}/items/{index} [delete]
func (h *FormHandler) RemoveItem(c *fiber.Ctx) error {
	return h.draft(c, func(c *fiber.Ctx) (form.State, error) {
		i, err := indexParam(c)
		if err != nil {
			return form.State{}, err
		}
		return h.useCase.RemoveItemAt(c.Context(), mustUser(c), form.List(c.Params("list")), i)
	})
}

// UpdateItem replaces one list item.
// @Summary Update list item
// @Tags    draft
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   list  path string      true "skills or languages"
// @Param   index path int         true "item index"
// @Param   input body itemRequest true "new value"
// @Success 200 {object} presenter.DataResponse
// @Router  /users/cv/draft/lists/{list}/items/{index} [patch]
func (h *FormHandler) UpdateItem(c *fiber.Ctx) error {
	return h.draft(c, func(c *fiber.Ctx) (form.State, error) {
		i, err := indexParam(c)
		if err != nil {
			return form.State{}, err
		}
		var req itemRequest
		if err := c.BodyParser(&req); err != nil {
			return form.State{}, fiber.NewError(fiber.StatusBadRequest, "invalid JSON payload")
		}
		return h.useCase.UpdateItemAt(c.Context(), mustUser(c), form.List(c.Params("list")), i, req.Value)
	})
}

// SubmitDraft saves the draft as the CV and discards it.
// @Summary Submit draft
// @Tags    draft
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.DataResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/cv/draft/submit [post]
func (h *FormHandler) SubmitDraft(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	p, err := h.useCase.SubmitDraft(c.Context(), userID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Data(c, http.StatusOK, p.CV, "CV updated successfully")
}

// draft runs op for an authenticated user and renders the resulting draft.
func (h *FormHandler) draft(c *fiber.Ctx, op func(*fiber.Ctx) (form.State, error)) error {
	if _, err := currentUser(c); err != nil {
		return presenter.FromError(c, err)
	}
	st, err := op(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Data(c, http.StatusOK, st, "Draft updated")
}

// mustUser is only called after draft has checked currentUser.
func mustUser(c *fiber.Ctx) uuid.UUID {
	id, _ := currentUser(c)
	return id
}
