package presenter

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/artem13815/cvbuilder/pkg/auth"
	"github.com/artem13815/cvbuilder/pkg/cv"
	"github.com/artem13815/cvbuilder/pkg/export"
	"github.com/artem13815/cvbuilder/pkg/form"
)

// Error kinds reported to clients.
const (
	KindAuth                = "auth"
	KindNotFound            = "not_found"
	KindValidation          = "validation"
	KindConflict            = "conflict"
	KindRenderTargetMissing = "render_target_missing"
	KindRasterization       = "rasterization_failure"
	KindServer              = "server"
)

type ErrorResponse struct {
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
	Field   string          `json:"field,omitempty"`
	Errors  []cv.FieldError `json:"errors,omitempty"`
}

// DataResponse wraps successful payloads.
type DataResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Data(c *fiber.Ctx, status int, data any, message string) error {
	return JSON(c, status, DataResponse{Data: data, Message: message})
}

func Error(c *fiber.Ctx, status int, kind, message string) error {
	return JSON(c, status, ErrorResponse{Message: message, Kind: kind})
}

// FromError maps a domain error onto exactly one error kind and status.
func FromError(c *fiber.Ctx, err error) error {
	var fieldErrs cv.ValidationErrors
	var formErr *form.ValidationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &formErr):
		status := http.StatusBadRequest
		if errors.Is(err, form.ErrMisaligned) {
			status = http.StatusUnprocessableEntity
		}
		return JSON(c, status, ErrorResponse{Message: formErr.Error(), Kind: KindValidation, Field: formErr.Field})
	case errors.As(err, &fieldErrs):
		resp := ErrorResponse{Message: fieldErrs.Error(), Kind: KindValidation, Errors: fieldErrs}
		if len(fieldErrs) > 0 {
			resp.Field = fieldErrs[0].Field
		}
		return JSON(c, http.StatusBadRequest, resp)
	case errors.Is(err, auth.ErrInvalidInput):
		return Error(c, http.StatusBadRequest, KindValidation, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return Error(c, http.StatusUnauthorized, KindAuth, err.Error())
	case errors.Is(err, auth.ErrUserAlreadyExists):
		return Error(c, http.StatusConflict, KindConflict, err.Error())
	case errors.Is(err, cv.ErrNotFound), errors.Is(err, auth.ErrNotFound):
		return Error(c, http.StatusNotFound, KindNotFound, "user not found")
	case errors.Is(err, form.ErrDraftNotFound):
		return Error(c, http.StatusNotFound, KindNotFound, err.Error())
	case errors.Is(err, export.ErrRenderTargetMissing):
		return Error(c, http.StatusUnprocessableEntity, KindRenderTargetMissing, "nothing to export: the CV view is not available")
	case errors.Is(err, export.ErrRasterization):
		log.Error().Err(err).Str("path", c.Path()).Msg("export failed")
		return Error(c, http.StatusBadGateway, KindRasterization, "failed to capture the CV view")
	case errors.As(err, &fiberErr):
		kind := KindServer
		switch {
		case fiberErr.Code == http.StatusUnauthorized:
			kind = KindAuth
		case fiberErr.Code == http.StatusNotFound:
			kind = KindNotFound
		case fiberErr.Code < 500:
			kind = KindValidation
		}
		return Error(c, fiberErr.Code, kind, fiberErr.Message)
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return Error(c, http.StatusInternalServerError, KindServer, "internal server error")
	}
}
