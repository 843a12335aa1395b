// Package errors defines custom error types for markwatch
package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// NotFoundError indicates a path that does not exist or is not a regular file
	NotFoundError ErrorType = "not_found"
	// NotMarkdownError indicates a file whose extension is not a known markdown extension
	NotMarkdownError ErrorType = "not_markdown"
	// ReadError indicates an OS-level failure other than not-found while reading a file or its metadata
	ReadError ErrorType = "read"
	// WatchError indicates a failure to establish a watch session
	WatchError ErrorType = "watch"
	// SourceDocumentError indicates an invalid source document path during link authorization
	SourceDocumentError ErrorType = "source_document"
	// ResolveError indicates a path canonicalization failure
	ResolveError ErrorType = "resolve"
	// ScopeError indicates a link target outside the allowed directory tree
	ScopeError ErrorType = "scope"
	// OpenError indicates the external opener reported a failure
	OpenError ErrorType = "open"
)

// MarkwatchError is the base error type for all markwatch errors
type MarkwatchError struct {
	Type       ErrorType
	Path       string
	AllowedDir string
	Reason     string
	Err        error
}

// Error implements the error interface
func (e *MarkwatchError) Error() string {
	switch e.Type {
	case NotFoundError:
		return fmt.Sprintf("file does not exist: %s", e.Path)
	case NotMarkdownError:
		return fmt.Sprintf("not a markdown file: %s", e.Path)
	case ScopeError:
		return fmt.Sprintf("linked file is outside allowed directory: %s (target: %s)", e.AllowedDir, e.Path)
	default:
		return fmt.Sprintf("[%s] %s: %s", e.Type, e.Path, e.Reason)
	}
}

// Unwrap returns the underlying error
func (e *MarkwatchError) Unwrap() error {
	return e.Err
}

// NewNotFound creates an error for a missing or non-regular file
func NewNotFound(path string) *MarkwatchError {
	return &MarkwatchError{Type: NotFoundError, Path: path}
}

// NewNotMarkdown creates an error for a file with an unrecognized extension
func NewNotMarkdown(path string) *MarkwatchError {
	return &MarkwatchError{Type: NotMarkdownError, Path: path}
}

// NewReadError creates an error for an OS failure other than not-found,
// preserving the OS reason text
func NewReadError(path string, err error) *MarkwatchError {
	return &MarkwatchError{Type: ReadError, Path: path, Reason: reasonOf(err), Err: err}
}

// NewWatchError creates an error for a watch session that could not be established
func NewWatchError(path, reason string) *MarkwatchError {
	return &MarkwatchError{Type: WatchError, Path: path, Reason: reason}
}

// NewSourceDocumentError creates an error for a source document path without a parent directory
func NewSourceDocumentError(path string) *MarkwatchError {
	return &MarkwatchError{Type: SourceDocumentError, Path: path, Reason: "no parent directory"}
}

// NewResolveError creates an error for a failed canonicalization, preserving the reason text
func NewResolveError(path string, err error) *MarkwatchError {
	return &MarkwatchError{Type: ResolveError, Path: path, Reason: reasonOf(err), Err: err}
}

// NewScopeError creates an error for a link target escaping the allowed directory,
// carrying both canonical paths for diagnostics
func NewScopeError(target, allowedDir string) *MarkwatchError {
	return &MarkwatchError{Type: ScopeError, Path: target, AllowedDir: allowedDir}
}

// NewOpenError creates an error for an external opener failure, preserving the reason text
func NewOpenError(path string, err error) *MarkwatchError {
	return &MarkwatchError{Type: OpenError, Path: path, Reason: reasonOf(err), Err: err}
}

func reasonOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsNotFound checks if the error indicates a missing or non-regular file
func IsNotFound(err error) bool {
	return isType(err, NotFoundError)
}

// IsNotMarkdown checks if the error indicates a non-markdown file
func IsNotMarkdown(err error) bool {
	return isType(err, NotMarkdownError)
}

// IsReadError checks if the error is a read/metadata failure
func IsReadError(err error) bool {
	return isType(err, ReadError)
}

// IsWatchError checks if the error is a watch setup failure
func IsWatchError(err error) bool {
	return isType(err, WatchError)
}

// IsSourceDocumentError checks if the error is an invalid source document path
func IsSourceDocumentError(err error) bool {
	return isType(err, SourceDocumentError)
}

// IsResolveError checks if the error is a canonicalization failure
func IsResolveError(err error) bool {
	return isType(err, ResolveError)
}

// IsScopeError checks if the error indicates a link target outside the allowed directory
func IsScopeError(err error) bool {
	return isType(err, ScopeError)
}

// IsOpenError checks if the error is an external opener failure
func IsOpenError(err error) bool {
	return isType(err, OpenError)
}

func isType(err error, t ErrorType) bool {
	if me, ok := err.(*MarkwatchError); ok {
		return me.Type == t
	}
	return false
}
