package report

import (
	"fmt"
	"strings"
	"time"

	"hospital-pdf-manager/internal/core/ports"
	"hospital-pdf-manager/pkg/apperror"
)

// FileStatus is the per-file entry of a batch summary.
type FileStatus struct {
	SourceID  string `json:"source_id"`
	OK        bool   `json:"ok"`
	Pages     int    `json:"pages,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message,omitempty"`
}

// BatchSummary is the user-visible outcome of one batch: a combined
// success/failure report rather than a single pass/fail.
type BatchSummary struct {
	BatchID   string       `json:"batch_id"`
	Timestamp string       `json:"timestamp"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Merged    bool         `json:"merged"`
	Files     []FileStatus `json:"files"`
	MergeNote string       `json:"merge_note,omitempty"`
}

// FromOutcome builds a summary from a batch outcome, in input order.
func FromOutcome(o *ports.BatchOutcome) BatchSummary {
	s := BatchSummary{
		BatchID:   o.BatchID.String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Merged:    o.Merged != nil,
	}

	for _, r := range o.Results {
		fs := FileStatus{SourceID: r.SourceID}
		if r.Err != nil {
			fs.ErrorCode = apperror.CodeOf(r.Err)
			fs.Message = r.Err.Error()
			s.Failed++
		} else {
			fs.OK = true
			fs.Pages = r.Document.PageCount
			s.Succeeded++
		}
		s.Files = append(s.Files, fs)
	}

	if o.MergeErr != nil {
		s.MergeNote = o.MergeErr.Error()
	}

	return s
}

// MarkFailed downgrades a previously successful entry, for a file that
// composed fine but could not be written to its destination.
func (s *BatchSummary) MarkFailed(sourceID string, err error) {
	for i := range s.Files {
		f := &s.Files[i]
		if f.SourceID != sourceID || !f.OK {
			continue
		}
		f.OK = false
		f.Pages = 0
		f.ErrorCode = apperror.CodeOf(err)
		f.Message = err.Error()
		s.Succeeded--
		s.Failed++
		return
	}
}

// FullFailure reports whether no file in the batch succeeded.
func (s BatchSummary) FullFailure() bool {
	return s.Succeeded == 0
}

// String renders a human-readable multi-line summary for the terminal.
func (s BatchSummary) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "batch %s: %d succeeded, %d failed\n", s.BatchID, s.Succeeded, s.Failed)
	for _, f := range s.Files {
		if f.OK {
			fmt.Fprintf(&b, "  ok    %s (%d pages)\n", f.SourceID, f.Pages)
		} else {
			fmt.Fprintf(&b, "  fail  %s: %s\n", f.SourceID, f.Message)
		}
	}
	if s.Merged {
		b.WriteString("  merged into a single document\n")
	}
	if s.MergeNote != "" {
		fmt.Fprintf(&b, "  merge: %s\n", s.MergeNote)
	}

	return b.String()
}
