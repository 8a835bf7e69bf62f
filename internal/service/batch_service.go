package service

import (
	"context"

	"hospital-pdf-manager/internal/core/domain"
	"hospital-pdf-manager/internal/core/ports"
	"hospital-pdf-manager/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BatchServiceImpl implements ports.BatchService.
type BatchServiceImpl struct {
	composer ports.PageComposer
	sources  ports.SourceResolver
	log      zerolog.Logger
}

// NewBatchService creates a new BatchServiceImpl.
func NewBatchService(composer ports.PageComposer, sources ports.SourceResolver, log zerolog.Logger) *BatchServiceImpl {
	return &BatchServiceImpl{
		composer: composer,
		sources:  sources,
		log:      log,
	}
}

// ProcessAll stamps each requested source independently. Per-entry
// failures are recorded in the outcome, never propagated; a failed
// entry is reported once and excluded from the merge step. Results
// preserve input order.
func (s *BatchServiceImpl) ProcessAll(ctx context.Context, requests []domain.StampRequest, mergeRequested bool) *ports.BatchOutcome {
	outcome := &ports.BatchOutcome{BatchID: uuid.New()}

	for _, req := range requests {
		doc, err := s.processOne(ctx, req)
		if err != nil {
			s.log.Warn().
				Err(err).
				Str("batch_id", outcome.BatchID.String()).
				Str("source", req.SourceID).
				Msg("source failed, continuing batch")
			outcome.Results = append(outcome.Results, ports.FileResult{SourceID: req.SourceID, Err: err})
			continue
		}
		outcome.Results = append(outcome.Results, ports.FileResult{SourceID: req.SourceID, Document: doc})
	}

	if mergeRequested {
		succeeded := outcome.Succeeded()
		if len(succeeded) == 0 {
			outcome.MergeErr = apperror.ErrNothingToMerge()
		} else {
			merged, err := s.composer.MergeAll(ctx, succeeded)
			if err != nil {
				outcome.MergeErr = err
			} else {
				outcome.Merged = merged
			}
		}
	}

	s.log.Info().
		Str("batch_id", outcome.BatchID.String()).
		Int("requested", len(requests)).
		Int("succeeded", len(outcome.Succeeded())).
		Int("failed", len(outcome.Failed())).
		Bool("merged", outcome.Merged != nil).
		Msg("batch processed")

	return outcome
}

func (s *BatchServiceImpl) processOne(ctx context.Context, req domain.StampRequest) (*domain.ComposedDocument, error) {
	data, err := s.sources.Resolve(req.SourceID)
	if err != nil {
		return nil, err
	}

	doc, err := s.composer.Compose(ctx, data, req.Label)
	if err != nil {
		return nil, err
	}

	doc.SourceID = req.SourceID
	return doc, nil
}
