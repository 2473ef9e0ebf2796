package client

import (
	"fmt"
	"net/http"

	"github.com/artem13815/cvbuilder/pkg/cv"
)

// Kind classifies every failed call.
type Kind string

const (
	KindAuth                Kind = "auth"
	KindNotFound            Kind = "not_found"
	KindValidation          Kind = "validation"
	KindConflict            Kind = "conflict"
	KindRenderTargetMissing Kind = "render_target_missing"
	KindRasterization       Kind = "rasterization_failure"
	KindServer              Kind = "server"
)

// Error is returned for every failed call. Status is 0 when the server
// could not be reached.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Field   string
	// Fields lists per-field rejections of a CV replacement.
	Fields []cv.FieldError
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Retryable reports whether re-issuing the same call may succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindServer || e.Kind == KindRasterization
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}
