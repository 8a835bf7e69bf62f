package service

import (
	"context"
	"os"
	"os/user"
	"strings"
	"time"

	"hospital-pdf-manager/internal/core/domain"
	"hospital-pdf-manager/internal/core/ports"

	"github.com/rs/zerolog"
)

// auditService implements ports.AuditService on an OperationRepository.
type auditService struct {
	repo ports.OperationRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewAuditService creates a new audit service.
func NewAuditService(repo ports.OperationRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log, now: time.Now}
}

// CheckDuplicate returns the prior record for the key's fingerprint, or
// nil when the operation is new. A failed lookup is logged and treated
// as not-duplicate: an audit query error must not block the hospital
// workflow.
func (s *auditService) CheckDuplicate(ctx context.Context, key domain.OperationKey) *domain.OperationRecord {
	fingerprint := key.Fingerprint()

	rec, err := s.repo.FindByFingerprint(ctx, fingerprint)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("fingerprint", fingerprint).
			Msg("duplicate check failed, treating operation as first occurrence")
		return nil
	}
	return rec
}

// RecordOperation persists the operation after output has been
// produced. Store errors propagate to the caller.
func (s *auditService) RecordOperation(ctx context.Context, key domain.OperationKey, isDuplicate bool, reason, outputPath string) (int64, error) {
	rec := &domain.OperationRecord{
		Timestamp:     s.now().Format("2006-01-02T15:04:05"),
		OperationType: key.OperationType,
		Timepoint:     key.Timepoint,
		CenterCode:    key.CenterCode,
		SubjectID:     key.SubjectID,
		Files:         key.SortedFiles(),
		Merge:         key.Merge,
		IsDuplicate:   isDuplicate,
		ReprintReason: reason,
		Actor:         currentUser(),
		Fingerprint:   key.Fingerprint(),
		FileCount:     len(key.Files),
		OutputPath:    outputPath,
	}

	id, err := s.repo.Record(ctx, rec)
	if err != nil {
		return 0, err
	}

	s.log.Info().
		Int64("id", id).
		Str("fingerprint", rec.Fingerprint).
		Str("operation", string(rec.OperationType)).
		Str("subject", rec.SubjectID).
		Bool("duplicate", isDuplicate).
		Int("files", rec.FileCount).
		Msg("operation recorded")

	return id, nil
}

// currentUser resolves a best-effort identity of the invoking user.
func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		name := u.Username
		// Strip a Windows DOMAIN\ prefix.
		if i := strings.LastIndexByte(name, '\\'); i >= 0 {
			name = name[i+1:]
		}
		return name
	}
	for _, env := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return "unknown"
}
