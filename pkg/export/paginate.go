package export

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/go-pdf/fpdf"
)

// Document is an assembled multi-page PDF.
type Document struct {
	PDF    []byte
	Strips []Strip
}

func (d Document) Pages() int { return len(d.Strips) }

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Paginate places img on consecutive pages, one strip per page, each strip
// at MarginTop and scaled to the full page width. Nothing is returned unless
// every page was written.
func Paginate(img image.Image, g Geometry) (Document, error) {
	if err := g.Validate(); err != nil {
		return Document{}, err
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return Document{}, fmt.Errorf("%w: empty bitmap", ErrRasterization)
	}

	ratio := g.Ratio(b.Dx())
	strips := PlanStrips(b.Dy(), g.StripHeight(b.Dx()))

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetMargins(0, g.MarginTop, 0)
	pdf.SetAutoPageBreak(false, g.MarginBottom)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, s := range strips {
		var buf bytes.Buffer
		rect := image.Rect(b.Min.X, b.Min.Y+s.Top, b.Max.X, b.Min.Y+s.Top+s.Height)
		if err := png.Encode(&buf, crop(img, rect)); err != nil {
			return Document{}, fmt.Errorf("encode strip %d: %w", i, err)
		}
		name := fmt.Sprintf("strip-%d", i)
		pdf.AddPage()
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.ImageOptions(name, 0, g.MarginTop, g.PageWidth, float64(s.Height)*ratio, false, opts, 0, "")
		if pdf.Err() {
			return Document{}, fmt.Errorf("place strip %d: %w", i, pdf.Error())
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return Document{}, fmt.Errorf("write pdf: %w", err)
	}
	return Document{PDF: out.Bytes(), Strips: strips}, nil
}

func crop(img image.Image, r image.Rectangle) image.Image {
	if si, ok := img.(subImager); ok {
		return si.SubImage(r)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}
