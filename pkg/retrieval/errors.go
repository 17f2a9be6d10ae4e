package retrieval

import "errors"

var (
	// ErrUnsupportedFormat is returned by an Extractor for a file
	// extension it does not know how to read.
	ErrUnsupportedFormat = errors.New("retrieval: unsupported document format")

	// ErrExtractFailed is returned when a known format failed to yield
	// text (corrupt file, empty pages, ASR failure).
	ErrExtractFailed = errors.New("retrieval: text extraction failed")

	// ErrEmptyContent is returned by build when no chunk-worthy text was
	// produced from any of the supplied documents.
	ErrEmptyContent = errors.New("retrieval: no content to index")
)
