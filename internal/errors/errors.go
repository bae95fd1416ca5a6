// Package errors defines domain-level errors used throughout mcp-get.
// These errors represent business logic failures; callers wrap them with context using %w
// and match them with errors.Is.
package errors

import (
	"errors"
)

var (
	// ErrPackageNotFound indicates that the requested package does not exist in the catalog.
	// Lookups are exact-name matches, so a differently cased or sanitized name will also produce this error.
	ErrPackageNotFound = errors.New("package not found")

	// ErrUnsupportedRuntime indicates that a package declares a runtime which cannot be turned
	// into a host registration record (e.g. runtime 'other' without a command).
	ErrUnsupportedRuntime = errors.New("unsupported runtime")

	// ErrCatalogInvalid indicates that the package catalog could not be decoded or failed schema validation.
	ErrCatalogInvalid = errors.New("package catalog invalid")

	// ErrPromptAborted indicates that interactive input ended before an answer was given (e.g. stdin closed).
	ErrPromptAborted = errors.New("prompt aborted")
)
