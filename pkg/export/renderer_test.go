package export

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvbuilder/pkg/cv"
)

type fakeRasterizer struct {
	img   image.Image
	err   error
	calls int
	html  string
	sel   string
	scale float64
}

func (f *fakeRasterizer) Rasterize(_ context.Context, html, selector string, scale float64) (image.Image, error) {
	f.calls++
	f.html, f.sel, f.scale = html, selector, scale
	return f.img, f.err
}

func TestRenderRasterizesOnceAndPaginates(t *testing.T) {
	raster := &fakeRasterizer{img: bitmap(400, 2500)}
	r := NewRenderer(raster, stripGeometry, "")

	doc, err := r.RenderProfile(context.Background(), cv.Profile{Email: "ada@example.com"})
	require.NoError(t, err)

	assert.Equal(t, 1, raster.calls)
	assert.Equal(t, ContainerSelector, raster.sel)
	assert.Equal(t, 2.0, raster.scale)
	assert.Contains(t, raster.html, "ada@example.com")
	assert.Equal(t, 3, doc.Pages())
	assert.NotEmpty(t, doc.PDF)
	assert.Equal(t, "CV.pdf", r.Filename())
}

func TestRenderFailuresProduceNoDocument(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
		not  error
	}{
		{"missing container", ErrRenderTargetMissing, ErrRenderTargetMissing, ErrRasterization},
		{"capture failed", ErrRasterization, ErrRasterization, ErrRenderTargetMissing},
		{"browser crashed", errors.New("chrome exited"), ErrRasterization, ErrRenderTargetMissing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRenderer(&fakeRasterizer{err: tc.err}, A4, "CV.pdf")

			doc, err := r.Render(context.Background(), "<html></html>")

			require.ErrorIs(t, err, tc.want)
			assert.NotErrorIs(t, err, tc.not)
			assert.Empty(t, doc.PDF)
			assert.Zero(t, doc.Pages())
		})
	}
}

func TestRenderRejectsBadGeometryBeforeRasterizing(t *testing.T) {
	raster := &fakeRasterizer{img: bitmap(10, 10)}
	r := NewRenderer(raster, Geometry{PageWidth: 210, PageHeight: 297, MarginTop: 200, MarginBottom: 200, Scale: 2}, "")

	_, err := r.Render(context.Background(), "")
	require.Error(t, err)
	assert.Zero(t, raster.calls)
}
