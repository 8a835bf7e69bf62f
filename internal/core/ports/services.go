package ports

import (
	"context"

	"hospital-pdf-manager/internal/core/domain"

	"github.com/google/uuid"
)

// PageComposer merges a rendered stamp layer onto PDF documents.
type PageComposer interface {
	// Compose stamps label onto every page of source, preserving page
	// count, order and geometry.
	Compose(ctx context.Context, source []byte, label string) (*domain.ComposedDocument, error)

	// MergeAll concatenates the pages of docs, in the order supplied,
	// into a single document.
	MergeAll(ctx context.Context, docs []*domain.ComposedDocument) (*domain.ComposedDocument, error)
}

// AuditService gates irreversible output on the duplicate-operation log.
type AuditService interface {
	// CheckDuplicate returns the prior record for the operation key,
	// or nil when the operation has not been seen before. A failed
	// lookup degrades to nil: the audit check must never block the
	// workflow.
	CheckDuplicate(ctx context.Context, key domain.OperationKey) *domain.OperationRecord

	// RecordOperation persists the operation after output is produced
	// and returns the record id.
	RecordOperation(ctx context.Context, key domain.OperationKey, isDuplicate bool, reason, outputPath string) (int64, error)
}

// BatchService drives PageComposer across a list of requested sources.
type BatchService interface {
	ProcessAll(ctx context.Context, requests []domain.StampRequest, mergeRequested bool) *BatchOutcome
}

// FileResult is the outcome for a single batch entry.
// Exactly one of Document and Err is set.
type FileResult struct {
	SourceID string
	Document *domain.ComposedDocument
	Err      error
}

// BatchOutcome reports per-file results in input order, plus the
// optional merge result.
type BatchOutcome struct {
	BatchID  uuid.UUID
	Results  []FileResult
	Merged   *domain.ComposedDocument
	MergeErr error
}

// Succeeded returns the successfully composed documents in input order.
func (o *BatchOutcome) Succeeded() []*domain.ComposedDocument {
	var docs []*domain.ComposedDocument
	for _, r := range o.Results {
		if r.Err == nil {
			docs = append(docs, r.Document)
		}
	}
	return docs
}

// Failed returns the failed entries in input order.
func (o *BatchOutcome) Failed() []FileResult {
	var failed []FileResult
	for _, r := range o.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// FullFailure reports whether no entry was processed successfully.
func (o *BatchOutcome) FullFailure() bool {
	return len(o.Succeeded()) == 0
}
