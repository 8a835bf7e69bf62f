package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hospital-pdf-manager/internal/core/domain"
	"hospital-pdf-manager/pkg/apperror"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

const (
	recordMaxAttempts = 3
	recordBackoffBase = 100 * time.Millisecond
)

// OperationRepo implements ports.OperationRepository on the Store.
type OperationRepo struct {
	db  *sqlx.DB
	log zerolog.Logger
}

// NewOperationRepo creates a repository bound to the store.
func NewOperationRepo(s *Store) *OperationRepo {
	return &OperationRepo{db: s.db, log: s.log}
}

type operationRow struct {
	ID             int64          `db:"id"`
	Timestamp      string         `db:"timestamp"`
	OperationType  string         `db:"operation_type"`
	TimePoint      string         `db:"time_point"`
	CenterCode     string         `db:"center_code"`
	HospitalNumber string         `db:"hospital_number"`
	PDFFiles       string         `db:"pdf_files"`
	MergeFlag      int            `db:"merge_flag"`
	IsDuplicate    int            `db:"is_duplicate"`
	ReprintReason  sql.NullString `db:"reprint_reason"`
	Username       sql.NullString `db:"username"`
	OperationHash  string         `db:"operation_hash"`
	FileCount      int            `db:"file_count"`
	OutputPath     sql.NullString `db:"output_path"`
}

func (r operationRow) toDomain() (*domain.OperationRecord, error) {
	var files []string
	if err := json.Unmarshal([]byte(r.PDFFiles), &files); err != nil {
		return nil, fmt.Errorf("decode pdf_files for record %d: %w", r.ID, err)
	}
	return &domain.OperationRecord{
		ID:            r.ID,
		Timestamp:     r.Timestamp,
		OperationType: domain.OperationType(r.OperationType),
		Timepoint:     r.TimePoint,
		CenterCode:    r.CenterCode,
		SubjectID:     r.HospitalNumber,
		Files:         files,
		Merge:         r.MergeFlag != 0,
		IsDuplicate:   r.IsDuplicate != 0,
		ReprintReason: r.ReprintReason.String,
		Actor:         r.Username.String,
		Fingerprint:   r.OperationHash,
		FileCount:     r.FileCount,
		OutputPath:    r.OutputPath.String,
	}, nil
}

const findByFingerprintSQL = `
SELECT id, timestamp, operation_type, time_point, center_code,
       hospital_number, pdf_files, merge_flag, is_duplicate,
       reprint_reason, username, operation_hash, file_count, output_path
FROM operations
WHERE operation_hash = ?
ORDER BY timestamp DESC
LIMIT 1`

// FindByFingerprint returns the most recent record for the fingerprint,
// or nil when none exists. Read-only.
func (r *OperationRepo) FindByFingerprint(ctx context.Context, fingerprint string) (*domain.OperationRecord, error) {
	var row operationRow
	err := r.db.GetContext(ctx, &row, findByFingerprintSQL, fingerprint)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, classifyStoreError(err)
	}
	return row.toDomain()
}

const insertSQL = `
INSERT INTO operations (
	timestamp, operation_type, time_point, center_code,
	hospital_number, pdf_files, merge_flag, is_duplicate,
	reprint_reason, username, operation_hash, file_count, output_path
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const refreshSQL = `
UPDATE operations
SET timestamp = ?, is_duplicate = 1, reprint_reason = ?, output_path = ?
WHERE operation_hash = ?`

// Record inserts a new audit row. A fingerprint uniqueness violation is
// not an error: another writer got there first, so the existing row is
// refreshed in place and its id returned. This keeps check+record safe
// under concurrent use without holding a lock across the pair.
// Transient lock contention is retried with increasing backoff.
func (r *OperationRepo) Record(ctx context.Context, rec *domain.OperationRecord) (int64, error) {
	filesJSON, err := json.Marshal(rec.Files)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("encode file set: %w", err))
	}

	var lastErr error
	for attempt := 0; attempt < recordMaxAttempts; attempt++ {
		res, err := r.db.ExecContext(ctx, insertSQL,
			rec.Timestamp,
			string(rec.OperationType),
			rec.Timepoint,
			rec.CenterCode,
			rec.SubjectID,
			string(filesJSON),
			boolToInt(rec.Merge),
			boolToInt(rec.IsDuplicate),
			nullable(rec.ReprintReason),
			nullable(rec.Actor),
			rec.Fingerprint,
			rec.FileCount,
			nullable(rec.OutputPath),
		)
		if err == nil {
			return res.LastInsertId()
		}

		if isUniqueViolation(err) {
			return r.refresh(ctx, rec)
		}

		if isBusy(err) && attempt < recordMaxAttempts-1 {
			lastErr = err
			r.log.Debug().Err(err).Int("attempt", attempt+1).Msg("operation log busy, retrying")
			sleep(ctx, recordBackoffBase*time.Duration(attempt+1))
			continue
		}

		return 0, classifyStoreError(err)
	}

	return 0, apperror.ErrStoreBusy(lastErr)
}

// refresh updates the surviving row for a fingerprint after a losing
// insert race. Last write wins on timestamp, reason and output path.
func (r *OperationRepo) refresh(ctx context.Context, rec *domain.OperationRecord) (int64, error) {
	if _, err := r.db.ExecContext(ctx, refreshSQL,
		rec.Timestamp, nullable(rec.ReprintReason), nullable(rec.OutputPath), rec.Fingerprint,
	); err != nil {
		return 0, classifyStoreError(err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id,
		`SELECT id FROM operations WHERE operation_hash = ?`, rec.Fingerprint,
	); err != nil {
		return 0, classifyStoreError(err)
	}
	return id, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}

func isClosed(err error) bool {
	return err != nil && strings.Contains(err.Error(), "database is closed")
}

func classifyStoreError(err error) error {
	switch {
	case isClosed(err):
		return apperror.ErrStoreClosed()
	case isBusy(err):
		return apperror.ErrStoreBusy(err)
	default:
		return apperror.InternalError(err)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
