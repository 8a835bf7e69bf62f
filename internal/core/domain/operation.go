package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// OperationType distinguishes how the stamped output left the system.
type OperationType string

const (
	OperationDownload OperationType = "download"
	OperationPrint    OperationType = "print"
)

// Timepoints are the visit-stage buckets an operation is recorded against.
const (
	TimepointA0 = "A0"
	TimepointA1 = "A1"
	TimepointA2 = "A2"
)

// Center codes of the participating hospitals.
const (
	CenterCMC = "CMC"
	CenterMNP = "MNP"
	CenterLDH = "LDH"
)

// CenterNames maps center codes to display names.
var CenterNames = map[string]string{
	CenterCMC: "CMC Vellore",
	CenterMNP: "Manipal Hospital",
	CenterLDH: "Ludhiana Hospital",
}

// ValidTimepoints enumerates the accepted timepoint bucket keys.
var ValidTimepoints = []string{TimepointA0, TimepointA1, TimepointA2}

// OperationKey holds the semantic identity of a stamping operation.
// Two operations with equal keys are the same operation regardless of
// when they ran, who ran them, or where the output went.
type OperationKey struct {
	Timepoint     string
	CenterCode    string
	SubjectID     string
	Files         []string
	OperationType OperationType
	Merge         bool
}

// SortedFiles returns the file set sorted lexicographically.
// The order the operator selected files in never matters.
func (k OperationKey) SortedFiles() []string {
	files := make([]string, len(k.Files))
	copy(files, k.Files)
	sort.Strings(files)
	return files
}

// fingerprintPayload fixes the canonical field order of the encoded key.
// Field order is alphabetical by serialized name; changing it changes
// every fingerprint ever computed.
type fingerprintPayload struct {
	CenterCode    string        `json:"center_code"`
	SubjectID     string        `json:"hospital_number"`
	Merge         bool          `json:"merge_flag"`
	OperationType OperationType `json:"operation_type"`
	Files         []string      `json:"pdf_files"`
	Timepoint     string        `json:"time_point"`
}

// Fingerprint derives the canonical SHA-256 identity hash of the key.
// It is a pure function of the six key fields with the file set
// order-normalized, and returns a 64-character lowercase hex digest.
func (k OperationKey) Fingerprint() string {
	payload := fingerprintPayload{
		CenterCode:    k.CenterCode,
		SubjectID:     k.SubjectID,
		Merge:         k.Merge,
		OperationType: k.OperationType,
		Files:         k.SortedFiles(),
		Timepoint:     k.Timepoint,
	}

	// Marshal of a struct is deterministic: fields are emitted in
	// declaration order, and the file list is already sorted.
	encoded, err := json.Marshal(payload)
	if err != nil {
		// Only unsupported types can fail here and the payload has none.
		panic("fingerprint encoding: " + err.Error())
	}

	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}

// OperationRecord is the persisted audit unit, one row per fingerprint.
type OperationRecord struct {
	ID            int64
	Timestamp     string // ISO-8601
	OperationType OperationType
	Timepoint     string
	CenterCode    string
	SubjectID     string
	Files         []string
	Merge         bool
	IsDuplicate   bool
	ReprintReason string
	Actor         string
	Fingerprint   string
	FileCount     int
	OutputPath    string
}

// Key reconstructs the semantic key of a stored record.
func (r *OperationRecord) Key() OperationKey {
	return OperationKey{
		Timepoint:     r.Timepoint,
		CenterCode:    r.CenterCode,
		SubjectID:     r.SubjectID,
		Files:         r.Files,
		OperationType: r.OperationType,
		Merge:         r.Merge,
	}
}
