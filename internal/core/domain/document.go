package domain

// StampRequest names one source document and the label to stamp onto it.
// Ephemeral, constructed per call, never persisted.
type StampRequest struct {
	SourceID string // document identifier, e.g. "arat.pdf"
	Label    string // stamp text, e.g. "CMC-12345"
}

// ComposedDocument is the result of stamping a source document, or of
// concatenating several stamped documents into one.
type ComposedDocument struct {
	SourceID  string
	Bytes     []byte
	PageCount int
}
