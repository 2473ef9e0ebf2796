package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvbuilder/api/http/presenter"
	"github.com/artem13815/cvbuilder/pkg/cv"
	"github.com/artem13815/cvbuilder/pkg/export"
)

// Exporter renders a profile view into a paginated document.
type Exporter interface {
	RenderProfile(ctx context.Context, p cv.Profile) (export.Document, error)
	Filename() string
}

type ExportHandler struct {
	profiles cv.UseCase
	exporter Exporter
}

func NewExportHandler(profiles cv.UseCase, exporter Exporter) *ExportHandler {
	return &ExportHandler{profiles: profiles, exporter: exporter}
}

// Export renders the current user's profile view as a PDF download.
// @Summary Export CV as PDF
// @Tags    cv
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /users/cv/export [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	p, err := h.profiles.Details(c.Context(), userID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	doc, err := h.exporter.RenderProfile(c.Context(), p)
	if err != nil {
		return presenter.FromError(c, err)
	}
	c.Attachment(h.exporter.Filename())
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set("X-Page-Count", strconv.Itoa(doc.Pages()))
	return c.Send(doc.PDF)
}
