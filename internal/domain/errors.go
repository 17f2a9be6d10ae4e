// Package domain holds the entity types and error surface shared by every
// pipeline component. Nothing in this package talks to a database, an LLM,
// or HTTP — it is the vocabulary the rest of the engine is written in.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors callers can match with errors.Is. Each typed error below
// wraps one of these so a single switch at the transport boundary can map
// the whole taxonomy to HTTP statuses without knowing every concrete type.
var (
	ErrInputInvalid      = errors.New("input invalid")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrStagesNotValidated = errors.New("stages not validated")
	ErrNotValidated      = errors.New("stage not validated")
	ErrGenerationFailed  = errors.New("code generation failed")
	ErrParseFailed       = errors.New("parse failed")
	ErrRetrievalNotReady = errors.New("retrieval index not ready")
	ErrLLM               = errors.New("llm gateway error")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrExtractFailed     = errors.New("document extraction failed")
)

// InputInvalidError reports that user-supplied text failed C4's bounds
// check or an upload was rejected before any stage was touched.
type InputInvalidError struct {
	Reason    string
	WordCount int
	Min       int
	Max       int
}

func (e *InputInvalidError) Error() string {
	if e.WordCount == 0 && e.Min == 0 && e.Max == 0 {
		return fmt.Sprintf("input invalid: %s", e.Reason)
	}
	return fmt.Sprintf("input invalid: %s (wordCount=%d, min=%d, max=%d)", e.Reason, e.WordCount, e.Min, e.Max)
}

func (e *InputInvalidError) Unwrap() error { return ErrInputInvalid }

// NewInputInvalid reports a rejection with no word-count context (empty
// text, unsupported upload, oversized upload).
func NewInputInvalid(reason string) error {
	return &InputInvalidError{Reason: reason}
}

// NewInputInvalidWordCount reports a word-count bounds violation.
func NewInputInvalidWordCount(wordCount, min, max int) error {
	reason := "too short"
	if wordCount > max {
		reason = "too long"
	}
	return &InputInvalidError{Reason: reason, WordCount: wordCount, Min: min, Max: max}
}

// NotFoundError reports that an entity of the given kind and id does not
// exist in the store.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound builds a NotFoundError for the given entity kind and id.
func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ForbiddenError reports an authorization precondition failure. The engine
// raises it; the transport layer decides what HTTP status it becomes.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	if e.Reason == "" {
		return "forbidden"
	}
	return fmt.Sprintf("forbidden: %s", e.Reason)
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// NewForbidden builds a ForbiddenError.
func NewForbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}

// StagesNotValidatedError reports that generateProjectCode was attempted
// while one or more stages in the project have not yet passed validation.
type StagesNotValidatedError struct {
	StageIDs []string
}

func (e *StagesNotValidatedError) Error() string {
	return fmt.Sprintf("stages not validated: %v", e.StageIDs)
}

func (e *StagesNotValidatedError) Unwrap() error { return ErrStagesNotValidated }

// NewStagesNotValidated builds a StagesNotValidatedError listing the
// offending stage ids.
func NewStagesNotValidated(stageIDs []string) error {
	return &StagesNotValidatedError{StageIDs: stageIDs}
}

// NotValidatedError reports that finalizeStage was attempted on a stage
// that has not passed validation.
type NotValidatedError struct {
	StageID string
}

func (e *NotValidatedError) Error() string {
	return fmt.Sprintf("stage %s not validated", e.StageID)
}

func (e *NotValidatedError) Unwrap() error { return ErrNotValidated }

// NewNotValidated builds a NotValidatedError for the given stage.
func NewNotValidated(stageID string) error {
	return &NotValidatedError{StageID: stageID}
}

// GenerationFailedError reports that code generation produced zero usable
// program blocks for a stage, or the LLM call itself failed.
type GenerationFailedError struct {
	StageID string
	Reason  string
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("generation failed for stage %s: %s", e.StageID, e.Reason)
}

func (e *GenerationFailedError) Unwrap() error { return ErrGenerationFailed }

// NewGenerationFailed builds a GenerationFailedError.
func NewGenerationFailed(stageID, reason string) error {
	return &GenerationFailedError{StageID: stageID, Reason: reason}
}

// ParseFailedError reports that the code parser found no recognizable
// block in LLM output.
type ParseFailedError struct {
	Snippet string
}

func (e *ParseFailedError) Error() string {
	return fmt.Sprintf("parse failed near: %q", e.Snippet)
}

func (e *ParseFailedError) Unwrap() error { return ErrParseFailed }

// NewParseFailed builds a ParseFailedError with a short excerpt of the
// unparseable text for diagnostics.
func NewParseFailed(snippet string) error {
	const maxLen = 120
	if len(snippet) > maxLen {
		snippet = snippet[:maxLen]
	}
	return &ParseFailedError{Snippet: snippet}
}

// RetrievalNotReadyError reports that a corpus has no persisted index to
// load (e.g. the default safety corpus was never built).
type RetrievalNotReadyError struct {
	Corpus string
}

func (e *RetrievalNotReadyError) Error() string {
	return fmt.Sprintf("retrieval corpus not ready: %s", e.Corpus)
}

func (e *RetrievalNotReadyError) Unwrap() error { return ErrRetrievalNotReady }

// NewRetrievalNotReady builds a RetrievalNotReadyError for the given corpus.
func NewRetrievalNotReady(corpus string) error {
	return &RetrievalNotReadyError{Corpus: corpus}
}

// LLMErrorKind enumerates the failure kinds the gateway distinguishes.
type LLMErrorKind string

const (
	LLMTransport    LLMErrorKind = "Transport"
	LLMUnauthorized LLMErrorKind = "Unauthorized"
	LLMRateLimited  LLMErrorKind = "RateLimited"
	LLMBadResponse  LLMErrorKind = "BadResponse"
)

// LLMErrorValue reports a gateway-level failure. Named LLMErrorValue (not
// LLMError) to avoid colliding with the ErrLLM sentinel above.
type LLMErrorValue struct {
	Kind LLMErrorKind
	Err  error
}

func (e *LLMErrorValue) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("llm error (%s)", e.Kind)
}

func (e *LLMErrorValue) Unwrap() error { return ErrLLM }

// NewLLMError builds an LLMErrorValue of the given kind.
func NewLLMError(kind LLMErrorKind, err error) error {
	return &LLMErrorValue{Kind: kind, Err: err}
}

// UnsupportedFormatError reports that a document extractor was asked to
// read a file extension it has no reader for.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q: %s", e.Ext, e.Path)
}

func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// NewUnsupportedFormat builds an UnsupportedFormatError.
func NewUnsupportedFormat(path, ext string) error {
	return &UnsupportedFormatError{Path: path, Ext: ext}
}

// ExtractFailedError reports that a recognized document format could not
// be read or decoded.
type ExtractFailedError struct {
	Path   string
	Reason string
}

func (e *ExtractFailedError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %s", e.Path, e.Reason)
}

func (e *ExtractFailedError) Unwrap() error { return ErrExtractFailed }

// NewExtractFailed builds an ExtractFailedError.
func NewExtractFailed(path, reason string) error {
	return &ExtractFailedError{Path: path, Reason: reason}
}

// Kind classifies err against the typed error taxonomy above, returning a
// short label for log attributes (e.g. the engine's Error-level logging
// of a failed operation). An LLMErrorValue reports its own LLMErrorKind;
// every other typed error reports its sentinel's short name. Unrecognized
// errors return "Unknown" rather than panicking or guessing.
func Kind(err error) string {
	if err == nil {
		return ""
	}

	var llmErr *LLMErrorValue
	if errors.As(err, &llmErr) {
		return string(llmErr.Kind)
	}

	switch {
	case errors.Is(err, ErrInputInvalid):
		return "InputInvalid"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrForbidden):
		return "Forbidden"
	case errors.Is(err, ErrStagesNotValidated):
		return "StagesNotValidated"
	case errors.Is(err, ErrNotValidated):
		return "NotValidated"
	case errors.Is(err, ErrGenerationFailed):
		return "GenerationFailed"
	case errors.Is(err, ErrParseFailed):
		return "ParseFailed"
	case errors.Is(err, ErrRetrievalNotReady):
		return "RetrievalNotReady"
	case errors.Is(err, ErrUnsupportedFormat):
		return "UnsupportedFormat"
	case errors.Is(err, ErrExtractFailed):
		return "ExtractFailed"
	default:
		return "Unknown"
	}
}
