package source

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by sources.
var (
	// ErrNoManifest is returned when the site carries no page count manifest.
	ErrNoManifest = errors.New("no page count manifest")

	// ErrInvalidManifest is returned when the manifest cannot be used.
	ErrInvalidManifest = errors.New("invalid page count manifest")

	// ErrPageTooLarge is returned when a page body exceeds the size bound.
	ErrPageTooLarge = errors.New("page too large")
)

// ErrorClass categorizes fetch failures.
type ErrorClass string

const (
	ErrorClassNotFound ErrorClass = "not_found"
	ErrorClassClient   ErrorClass = "client"
	ErrorClassServer   ErrorClass = "server"
	ErrorClassNetwork  ErrorClass = "network"
)

// FetchError is a content fetch failure with enough context to show inline.
type FetchError struct {
	Page       int
	StatusCode int
	Class      ErrorClass
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("page %d: %s error (status %d)", e.Page, e.Class, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("page %d: %s error: %v", e.Page, e.Class, e.Err)
	}
	return fmt.Sprintf("page %d: %s error", e.Page, e.Class)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Retryable reports whether asking again may succeed.
func (e *FetchError) Retryable() bool {
	switch e.Class {
	case ErrorClassServer, ErrorClassNetwork:
		return true
	default:
		return false
	}
}

// classifyStatus maps an HTTP status code to an ErrorClass.
func classifyStatus(code int) ErrorClass {
	switch {
	case code == http.StatusNotFound || code == http.StatusGone:
		return ErrorClassNotFound
	case code >= 500:
		return ErrorClassServer
	default:
		return ErrorClassClient
	}
}
