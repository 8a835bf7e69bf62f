package integration

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// pageDim is a page size in points.
type pageDim struct {
	w, h float64
}

var a4 = pageDim{w: 595.28, h: 841.89}
var letter = pageDim{w: 612, h: 792}

// buildPDF writes a minimal but fully valid PDF with one page per
// entry in dims, computing exact xref offsets as it goes.
func buildPDF(t *testing.T, dims ...pageDim) []byte {
	t.Helper()

	if len(dims) == 0 {
		t.Fatal("buildPDF requires at least one page")
	}

	var buf bytes.Buffer
	var offsets []int

	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(dims))
	for i := range dims {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}

	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), len(dims)))
	for i, d := range dims {
		addObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] /Resources << >> >>\nendobj\n",
			3+i, d.w, d.h))
	}

	xrefPos := buf.Len()
	size := len(offsets) + 1 // including the free object 0

	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", size))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, xrefPos))

	return buf.Bytes()
}

// writeFixture drops a generated PDF into dir under name.
func writeFixture(t *testing.T, dir, name string, dims ...pageDim) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), buildPDF(t, dims...), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
}
