package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvbuilder/api/http/presenter"
	"github.com/artem13815/cvbuilder/pkg/cv"
)

type UsersHandler struct {
	useCase cv.UseCase
}

func NewUsersHandler(useCase cv.UseCase) *UsersHandler {
	return &UsersHandler{useCase: useCase}
}

// List returns all users, optionally filtered by skill.
// @Summary List users
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Param   skill  query string false "skill or alias, e.g. golang"
// @Param   limit  query int    false "page size (max 200)"
// @Param   offset query int    false "offset"
// @Success 200 {object} presenter.DataResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /users [get]
func (h *UsersHandler) List(c *fiber.Ctx) error {
	items, err := h.useCase.List(c.Context(), listFilter(c))
	if err != nil {
		return presenter.FromError(c, err)
	}
	if items == nil {
		items = []cv.Profile{}
	}
	return presenter.Data(c, http.StatusOK, items, "List of users")
}

// Details returns the current user's profile.
// @Summary Current user
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.DataResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/details [get]
func (h *UsersHandler) Details(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	p, err := h.useCase.Details(c.Context(), userID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Data(c, http.StatusOK, p, "Current user details")
}

// DeleteAccount deletes the current user together with their CV and draft.
// @Summary Delete account
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.DataResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/delete-account [delete]
func (h *UsersHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	if err := h.useCase.DeleteAccount(c.Context(), userID); err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Data(c, http.StatusOK, nil, "User deleted successfully")
}

// GetCV returns the current user's CV document.
// @Summary Current CV
// @Tags    cv
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.DataResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/cv [get]
func (h *UsersHandler) GetCV(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	doc, err := h.useCase.GetCV(c.Context(), userID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Data(c, http.StatusOK, doc, "Current CV")
}

// UpdateCV replaces the whole CV; omitted fields become empty.
// @Summary Replace CV
// @Tags    cv
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body cv.CV true "full CV document"
// @Success 200 {object} presenter.DataResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /users/update-cv [put]
func (h *UsersHandler) UpdateCV(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	var doc cv.CV
	if err := c.BodyParser(&doc); err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid JSON payload: "+err.Error())
	}
	p, err := h.useCase.ReplaceCV(c.Context(), userID, doc)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Data(c, http.StatusOK, p.CV, "CV updated successfully")
}
