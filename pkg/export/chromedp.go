package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

// ChromedpRasterizer renders HTML in headless Chrome and screenshots one
// element.
type ChromedpRasterizer struct {
	ExecPath      string
	ViewportWidth int
	Timeout       time.Duration
}

func NewChromedpRasterizer(execPath string, viewportWidth int, timeout time.Duration) *ChromedpRasterizer {
	if viewportWidth <= 0 {
		viewportWidth = 794
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromedpRasterizer{ExecPath: execPath, ViewportWidth: viewportWidth, Timeout: timeout}
}

func (r *ChromedpRasterizer) Rasterize(ctx context.Context, html, selector string, scale float64) (image.Image, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()
	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()
	cctx, cancelTimeout := context.WithTimeout(cctx, r.Timeout)
	defer cancelTimeout()

	tmpDir, err := os.MkdirTemp("", "cvexport-")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterization, err)
	}
	defer os.RemoveAll(tmpDir)
	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterization, err)
	}

	var nodes []*cdp.Node
	err = chromedp.Run(cctx,
		chromedp.EmulateViewport(int64(r.ViewportWidth), 1123),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: load page: %v", ErrRasterization, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRenderTargetMissing, selector)
	}

	var shot []byte
	if err := chromedp.Run(cctx, chromedp.ScreenshotScale(selector, scale, &shot, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("%w: screenshot: %v", ErrRasterization, err)
	}
	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("%w: decode screenshot: %v", ErrRasterization, err)
	}
	return img, nil
}
