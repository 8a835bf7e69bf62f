package main

import (
	"fmt"
	"regexp"
	"slices"
	"unicode/utf8"

	"hospital-pdf-manager/internal/core/domain"
)

const (
	maxSubjectIDLen = 20
	minReasonLen    = 10
	maxReasonLen    = 500
)

var subjectIDPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// inputs carries the parsed command line after flag handling.
type inputs struct {
	Center    string
	Timepoint string
	SubjectID string
	Operation domain.OperationType
	Merge     bool
	OutDir    string
	Reason    string
	Files     []string
}

// validate checks the request fields at the program boundary so the
// core packages never see malformed identifiers.
func (in *inputs) validate() error {
	if _, ok := domain.CenterNames[in.Center]; !ok {
		return fmt.Errorf("unknown center %q (expected %s, %s or %s)",
			in.Center, domain.CenterCMC, domain.CenterMNP, domain.CenterLDH)
	}
	if !slices.Contains(domain.ValidTimepoints, in.Timepoint) {
		return fmt.Errorf("unknown timepoint %q (expected one of %v)", in.Timepoint, domain.ValidTimepoints)
	}
	if in.SubjectID == "" {
		return fmt.Errorf("hospital number is required")
	}
	if len(in.SubjectID) > maxSubjectIDLen {
		return fmt.Errorf("hospital number exceeds %d characters", maxSubjectIDLen)
	}
	if !subjectIDPattern.MatchString(in.SubjectID) {
		return fmt.Errorf("hospital number may contain only letters, digits and hyphens")
	}
	switch in.Operation {
	case domain.OperationDownload, domain.OperationPrint:
	default:
		return fmt.Errorf("unknown operation %q (expected %s or %s)",
			in.Operation, domain.OperationDownload, domain.OperationPrint)
	}
	if len(in.Files) == 0 {
		return fmt.Errorf("at least one PDF file is required")
	}
	return nil
}

// validateReason enforces the reprint-reason length policy applied when
// an operation has been performed before. Bounds are in characters, not
// bytes.
func validateReason(reason string) error {
	n := utf8.RuneCountInString(reason)
	if n < minReasonLen {
		return fmt.Errorf("reprint reason must be at least %d characters", minReasonLen)
	}
	if n > maxReasonLen {
		return fmt.Errorf("reprint reason must be at most %d characters", maxReasonLen)
	}
	return nil
}

func (in *inputs) key() domain.OperationKey {
	return domain.OperationKey{
		Timepoint:     in.Timepoint,
		CenterCode:    in.Center,
		SubjectID:     in.SubjectID,
		Files:         in.Files,
		OperationType: in.Operation,
		Merge:         in.Merge,
	}
}

// stampLabel is the text placed at the top-right of every page.
func (in *inputs) stampLabel() string {
	return fmt.Sprintf("%s-%s", in.Center, in.SubjectID)
}
