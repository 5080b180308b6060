package app

import (
	"context"
	"errors"

	"sentinel-ds/internal/lawapi"
	"sentinel-ds/internal/pkg/pdfextract"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoArticles         = errors.New("no articles recognized")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrInvalidCredential  = errors.New("invalid operator pin")
	ErrAuthNotConfigured  = errors.New("operator pin is not configured")
	ErrRefreshUnavailable = errors.New("refresh queue is not available")
)

// FailureKind classifies why one document could not be ingested.
type FailureKind string

const (
	KindConfiguration FailureKind = "configuration"
	KindExtraction    FailureKind = "extraction"
	KindTransport     FailureKind = "transport"
	KindParse         FailureKind = "parse"
	KindEmpty         FailureKind = "empty"
	KindInvalidInput  FailureKind = "invalid_input"
	KindInternal      FailureKind = "internal"
)

// Classify maps an ingestion error onto a FailureKind. A nil error has no kind.
func Classify(err error) FailureKind {
	var (
		extractErr   *pdfextract.ExtractionError
		transportErr *lawapi.TransportError
		parseErr     *lawapi.ParseError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, lawapi.ErrMissingAPIKey), errors.Is(err, lawapi.ErrUnknownLawType):
		return KindConfiguration
	case errors.As(err, &extractErr):
		return KindExtraction
	case errors.As(err, &transportErr), errors.Is(err, context.DeadlineExceeded):
		return KindTransport
	case errors.As(err, &parseErr):
		return KindParse
	case errors.Is(err, ErrNoArticles):
		return KindEmpty
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindInternal
	}
}
