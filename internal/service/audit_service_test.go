package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital-pdf-manager/internal/core/domain"
	"hospital-pdf-manager/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testKey() domain.OperationKey {
	return domain.OperationKey{
		Timepoint:     domain.TimepointA0,
		CenterCode:    domain.CenterCMC,
		SubjectID:     "12345",
		Files:         []string{"nhpt.pdf", "arat.pdf"},
		OperationType: domain.OperationDownload,
	}
}

func TestCheckDuplicate_ReturnsPriorRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	key := testKey()
	prior := &domain.OperationRecord{
		ID:          7,
		Fingerprint: key.Fingerprint(),
		Actor:       "wardclerk",
		Timestamp:   "2026-01-10T09:00:00",
	}

	mockRepo := mocks.NewMockOperationRepository(ctrl)
	mockRepo.EXPECT().FindByFingerprint(gomock.Any(), key.Fingerprint()).Return(prior, nil)

	svc := NewAuditService(mockRepo, newTestLogger())

	got := svc.CheckDuplicate(context.Background(), key)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "wardclerk", got.Actor, "prior record is returned verbatim")
}

func TestCheckDuplicate_Absent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOperationRepository(ctrl)
	mockRepo.EXPECT().FindByFingerprint(gomock.Any(), gomock.Any()).Return(nil, nil)

	svc := NewAuditService(mockRepo, newTestLogger())

	assert.Nil(t, svc.CheckDuplicate(context.Background(), testKey()))
}

func TestCheckDuplicate_QueryErrorDegradesToNotDuplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOperationRepository(ctrl)
	mockRepo.EXPECT().FindByFingerprint(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk I/O error"))

	svc := NewAuditService(mockRepo, newTestLogger())

	assert.Nil(t, svc.CheckDuplicate(context.Background(), testKey()),
		"a failed audit check must not block the workflow")
}

func TestRecordOperation_FillsDerivedFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	key := testKey()

	var captured *domain.OperationRecord
	mockRepo := mocks.NewMockOperationRepository(ctrl)
	mockRepo.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, rec *domain.OperationRecord) (int64, error) {
			captured = rec
			return 42, nil
		},
	)

	svc := &auditService{
		repo: mockRepo,
		log:  newTestLogger(),
		now:  func() time.Time { return time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC) },
	}

	id, err := svc.RecordOperation(context.Background(), key, false, "", "/out/stamped")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	require.NotNil(t, captured)
	assert.Equal(t, "2026-01-10T09:00:00", captured.Timestamp)
	assert.Equal(t, key.Fingerprint(), captured.Fingerprint)
	assert.Equal(t, []string{"arat.pdf", "nhpt.pdf"}, captured.Files, "file set is stored sorted")
	assert.Equal(t, 2, captured.FileCount)
	assert.Equal(t, "/out/stamped", captured.OutputPath)
	assert.NotEmpty(t, captured.Actor)
	assert.False(t, captured.IsDuplicate)
}

func TestRecordOperation_DuplicateCarriesReason(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var captured *domain.OperationRecord
	mockRepo := mocks.NewMockOperationRepository(ctrl)
	mockRepo.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, rec *domain.OperationRecord) (int64, error) {
			captured = rec
			return 1, nil
		},
	)

	svc := NewAuditService(mockRepo, newTestLogger())

	_, err := svc.RecordOperation(context.Background(), testKey(), true, "printout misplaced on the ward", "")
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.True(t, captured.IsDuplicate)
	assert.Equal(t, "printout misplaced on the ward", captured.ReprintReason)
	assert.Empty(t, captured.OutputPath, "print-path operations store no output location")
}

func TestRecordOperation_RepoErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockOperationRepository(ctrl)
	mockRepo.EXPECT().Record(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database is locked"))

	svc := NewAuditService(mockRepo, newTestLogger())

	_, err := svc.RecordOperation(context.Background(), testKey(), false, "", "")
	assert.Error(t, err)
}
