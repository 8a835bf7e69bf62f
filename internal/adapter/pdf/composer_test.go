package pdf

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"hospital-pdf-manager/internal/core/domain"
	"hospital-pdf-manager/pkg/apperror"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComposer() *Composer {
	return NewComposer(zerolog.Nop())
}

// readDims parses a composed document and returns its page dimensions.
func readDims(t *testing.T, data []byte) []struct{ w, h float64 } {
	t.Helper()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	rc, err := api.ReadContext(bytes.NewReader(data), conf)
	require.NoError(t, err, "composed output should be a readable PDF")

	dims, err := rc.PageDims()
	require.NoError(t, err)

	out := make([]struct{ w, h float64 }, len(dims))
	for i, d := range dims {
		out[i] = struct{ w, h float64 }{d.Width, d.Height}
	}
	return out
}

func TestCompose_SinglePage(t *testing.T) {
	c := newTestComposer()
	src := buildPDF(t, letter)

	doc, err := c.Compose(context.Background(), src, "CMC-12345")
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, 1, doc.PageCount)
	assert.NotEmpty(t, doc.Bytes)

	dims := readDims(t, doc.Bytes)
	require.Len(t, dims, 1)
	assert.InDelta(t, letter.w, dims[0].w, 0.01)
	assert.InDelta(t, letter.h, dims[0].h, 0.01)
}

func TestCompose_PreservesPageCountAndGeometry(t *testing.T) {
	c := newTestComposer()

	// Mixed page sizes within one document.
	src := buildPDF(t, letter, a4, letter)

	doc, err := c.Compose(context.Background(), src, "LDH-900")
	require.NoError(t, err)
	assert.Equal(t, 3, doc.PageCount)

	dims := readDims(t, doc.Bytes)
	require.Len(t, dims, 3)
	assert.InDelta(t, letter.w, dims[0].w, 0.01)
	assert.InDelta(t, a4.w, dims[1].w, 0.01)
	assert.InDelta(t, a4.h, dims[1].h, 0.01)
	assert.InDelta(t, letter.w, dims[2].w, 0.01)
}

func TestCompose_CorruptSource(t *testing.T) {
	c := newTestComposer()

	_, err := c.Compose(context.Background(), []byte("definitely not a pdf"), "CMC-1")
	require.Error(t, err)
	assert.Equal(t, apperror.KindCorrupt, apperror.KindOf(err))
}

func TestCompose_TruncatedSource(t *testing.T) {
	c := newTestComposer()
	src := buildPDF(t, letter)

	_, err := c.Compose(context.Background(), src[:len(src)/3], "CMC-1")
	require.Error(t, err)
	assert.Equal(t, apperror.KindCorrupt, apperror.KindOf(err))
}

func TestMergeAll_ConcatenatesInOrder(t *testing.T) {
	c := newTestComposer()
	ctx := context.Background()

	first, err := c.Compose(ctx, buildPDF(t, letter, letter), "CMC-1")
	require.NoError(t, err)
	second, err := c.Compose(ctx, buildPDF(t, a4), "CMC-1")
	require.NoError(t, err)

	merged, err := c.MergeAll(ctx, []*domain.ComposedDocument{first, second})
	require.NoError(t, err)

	assert.Equal(t, 3, merged.PageCount)
	assert.Equal(t, "merged", merged.SourceID)

	dims := readDims(t, merged.Bytes)
	require.Len(t, dims, 3)
	// Pages of the first input come first, in their original order.
	assert.InDelta(t, letter.w, dims[0].w, 0.01)
	assert.InDelta(t, letter.w, dims[1].w, 0.01)
	assert.InDelta(t, a4.w, dims[2].w, 0.01)
}

func TestMergeAll_Empty(t *testing.T) {
	c := newTestComposer()

	_, err := c.MergeAll(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNothingToMerge, apperror.KindOf(err))
}

func TestClassifyReadError(t *testing.T) {
	encrypted := errors.New("pdfcpu: please provide the correct password")
	assert.Equal(t, apperror.KindEncrypted, apperror.KindOf(classifyReadError(encrypted)))

	restricted := errors.New("pdfcpu: this file is Encrypted")
	assert.Equal(t, apperror.KindEncrypted, apperror.KindOf(classifyReadError(restricted)))

	assert.Equal(t, apperror.KindCorrupt, apperror.KindOf(classifyReadError(assert.AnError)),
		"fallback is corrupt, not encrypted")
}
