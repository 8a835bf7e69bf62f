package ports

import (
	"context"

	"hospital-pdf-manager/internal/core/domain"
)

// OperationRepository defines persistence for the operation audit log.
type OperationRepository interface {
	// FindByFingerprint returns the most recent record for the given
	// fingerprint, or nil when no such record exists. Read-only.
	FindByFingerprint(ctx context.Context, fingerprint string) (*domain.OperationRecord, error)

	// Record inserts a new audit row. When a row with the same
	// fingerprint already exists, the existing row is refreshed in
	// place (timestamp, duplicate flag, reprint reason) and its id
	// is returned. Never produces a second row per fingerprint.
	Record(ctx context.Context, rec *domain.OperationRecord) (int64, error)
}

// SourceResolver resolves a document identifier to its raw bytes.
type SourceResolver interface {
	Resolve(id string) ([]byte, error)
}
