package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/artem13815/cvbuilder/pkg/cv"
)

var (
	// ErrRenderTargetMissing means the container to export is not on the page.
	ErrRenderTargetMissing = errors.New("render target not found")
	// ErrRasterization means the container was found but could not be captured.
	ErrRasterization = errors.New("rasterization failed")
)

// ContainerSelector selects the CV view container.
const ContainerSelector = "#cvContainer"

// Rasterizer captures the element matched by selector as one bitmap at
// scale times its on-screen size.
type Rasterizer interface {
	Rasterize(ctx context.Context, html, selector string, scale float64) (image.Image, error)
}

// Renderer exports a profile view as a paginated PDF.
type Renderer struct {
	raster   Rasterizer
	geometry Geometry
	filename string
}

func NewRenderer(r Rasterizer, g Geometry, filename string) *Renderer {
	if filename == "" {
		filename = "CV.pdf"
	}
	return &Renderer{raster: r, geometry: g, filename: filename}
}

// Filename is the name the document is offered under.
func (r *Renderer) Filename() string { return r.filename }

// Render rasterizes html once and paginates the bitmap. Errors wrap
// ErrRenderTargetMissing or ErrRasterization; no partial document is
// returned.
func (r *Renderer) Render(ctx context.Context, html string) (Document, error) {
	if err := r.geometry.Validate(); err != nil {
		return Document{}, err
	}
	start := time.Now()

	img, err := r.raster.Rasterize(ctx, html, ContainerSelector, r.geometry.Scale)
	if err != nil {
		if errors.Is(err, ErrRenderTargetMissing) || errors.Is(err, ErrRasterization) {
			return Document{}, err
		}
		return Document{}, fmt.Errorf("%w: %v", ErrRasterization, err)
	}

	doc, err := Paginate(img, r.geometry)
	if err != nil {
		return Document{}, err
	}
	b := img.Bounds()
	log.Info().
		Int("bitmap_width", b.Dx()).
		Int("bitmap_height", b.Dy()).
		Int("pages", doc.Pages()).
		Dur("took", time.Since(start)).
		Msg("cv exported")
	return doc, nil
}

// RenderProfile renders the CV view of p.
func (r *Renderer) RenderProfile(ctx context.Context, p cv.Profile) (Document, error) {
	html, err := RenderView(p)
	if err != nil {
		return Document{}, err
	}
	return r.Render(ctx, html)
}
