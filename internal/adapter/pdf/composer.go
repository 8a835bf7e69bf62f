package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"hospital-pdf-manager/internal/core/domain"
	"hospital-pdf-manager/pkg/apperror"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"
)

// Composer implements ports.PageComposer using pdfcpu.
// It holds no mutable state and is safe to run in parallel across
// independent source files.
type Composer struct {
	renderer *OverlayRenderer
	conf     *model.Configuration
	log      zerolog.Logger
}

// NewComposer creates a Composer with relaxed validation, which accepts
// the slightly non-conformant PDFs third-party form generators produce.
func NewComposer(log zerolog.Logger) *Composer {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &Composer{
		renderer: NewOverlayRenderer(),
		conf:     conf,
		log:      log,
	}
}

// Compose stamps label onto every page of source. Page count, order and
// geometry are preserved; the overlay draws on top of existing content.
func (c *Composer) Compose(ctx context.Context, source []byte, label string) (*domain.ComposedDocument, error) {
	rc, err := api.ReadContext(bytes.NewReader(source), c.conf)
	if err != nil {
		return nil, classifyReadError(err)
	}

	if rc.Encrypt != nil {
		return nil, apperror.ErrEncrypted("")
	}

	dims, err := rc.PageDims()
	if err != nil {
		return nil, apperror.ErrCorrupt("", fmt.Errorf("reading page dimensions: %w", err))
	}
	if len(dims) == 0 {
		return nil, apperror.ErrCorrupt("", fmt.Errorf("document has no pages"))
	}

	// One layer per page, rendered for that page's exact dimensions.
	labels := make(map[int]*model.Watermark, len(dims))
	timestamps := make(map[int]*model.Watermark, len(dims))
	for i, dim := range dims {
		layer, err := c.renderer.Render(label, dim.Width, dim.Height)
		if err != nil {
			return nil, err
		}
		labels[i+1] = layer.Label
		timestamps[i+1] = layer.Timestamp
	}

	var withLabels bytes.Buffer
	if err := api.AddWatermarksMap(bytes.NewReader(source), &withLabels, labels, c.conf); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("applying label overlay: %w", err))
	}

	var out bytes.Buffer
	if err := api.AddWatermarksMap(bytes.NewReader(withLabels.Bytes()), &out, timestamps, c.conf); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("applying timestamp overlay: %w", err))
	}

	return &domain.ComposedDocument{
		Bytes:     out.Bytes(),
		PageCount: len(dims),
	}, nil
}

// MergeAll concatenates the pages of docs, in the order supplied, into
// one document. Inputs are consumed once.
func (c *Composer) MergeAll(ctx context.Context, docs []*domain.ComposedDocument) (*domain.ComposedDocument, error) {
	if len(docs) == 0 {
		return nil, apperror.ErrNothingToMerge()
	}

	readers := make([]io.ReadSeeker, 0, len(docs))
	pages := 0
	for _, doc := range docs {
		readers = append(readers, bytes.NewReader(doc.Bytes))
		pages += doc.PageCount
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, c.conf); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("merging %d documents: %w", len(docs), err))
	}

	return &domain.ComposedDocument{
		SourceID:  "merged",
		Bytes:     out.Bytes(),
		PageCount: pages,
	}, nil
}

// classifyReadError maps pdfcpu open failures onto the error taxonomy.
// Password-protected sources are explicitly unsupported; everything
// else unreadable counts as corrupt.
func classifyReadError(err error) *apperror.AppError {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "password") || strings.Contains(msg, "encrypt") {
		return apperror.ErrEncrypted("")
	}
	return apperror.ErrCorrupt("", err)
}
