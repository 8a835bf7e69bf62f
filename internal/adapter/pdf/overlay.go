package pdf

import (
	"fmt"
	"time"

	"hospital-pdf-manager/pkg/apperror"

	"github.com/pdfcpu/pdfcpu/pkg/font"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Stamp layout, in page-coordinate points. The label goes to the
// top-right corner, the timestamp to the bottom-left.
const (
	FontName = "Helvetica"
	FontSize = 10

	MarginTop    = 20.0
	MarginRight  = 20.0
	MarginBottom = 20.0
	MarginLeft   = 20.0
)

const timestampLayout = "2006-01-02 15:04:05"

// OverlayLayer is a transparent single-page drawing layer holding the
// two positioned text stamps for one page. It is only valid for a page
// whose dimensions equal Width x Height.
type OverlayLayer struct {
	Width  float64
	Height float64

	Label     *model.Watermark
	Timestamp *model.Watermark
}

// OverlayRenderer produces overlay layers for individual pages.
// It holds no mutable state and is safe for concurrent use.
type OverlayRenderer struct {
	now func() time.Time
}

// NewOverlayRenderer creates an OverlayRenderer using the wall clock
// for the timestamp stamp.
func NewOverlayRenderer() *OverlayRenderer {
	return &OverlayRenderer{now: time.Now}
}

// Render lays out text for a page of the given dimensions: the label
// right-aligned MarginRight from the right edge with its baseline
// MarginTop+FontSize below the top edge, and the current timestamp at
// MarginLeft/MarginBottom from the bottom-left corner. Coordinate
// origin is the bottom-left of the page.
func (r *OverlayRenderer) Render(text string, pageWidth, pageHeight float64) (*OverlayLayer, error) {
	if pageWidth <= 0 || pageHeight <= 0 {
		return nil, apperror.ErrRender(fmt.Sprintf("non-positive page dimensions: %.2f x %.2f", pageWidth, pageHeight))
	}

	labelWidth := font.TextWidth(text, FontName, FontSize)
	if labelWidth <= 0 {
		return nil, apperror.ErrRender(fmt.Sprintf("cannot measure text %q in %s", text, FontName))
	}

	label, err := newTextStamp(text, pageWidth-labelWidth-MarginRight, pageHeight-MarginTop-FontSize)
	if err != nil {
		return nil, err
	}

	stamped, err := newTextStamp(r.now().Format(timestampLayout), MarginLeft, MarginBottom)
	if err != nil {
		return nil, err
	}

	return &OverlayLayer{
		Width:     pageWidth,
		Height:    pageHeight,
		Label:     label,
		Timestamp: stamped,
	}, nil
}

// newTextStamp builds an on-top text watermark anchored at the page's
// bottom-left corner and shifted to the absolute position (x, y).
func newTextStamp(text string, x, y float64) (*model.Watermark, error) {
	desc := fmt.Sprintf("fontname:%s, points:%d, scale:1 abs, pos:bl, rot:0, fillcolor:#000000, op:1", FontName, FontSize)

	wm, err := pdfcpu.ParseTextWatermarkDetails(text, desc, true, types.POINTS)
	if err != nil {
		return nil, apperror.ErrRender(fmt.Sprintf("building text stamp: %v", err))
	}

	// Manually override positioning.
	wm.Dx = x
	wm.Dy = y

	return wm, nil
}
