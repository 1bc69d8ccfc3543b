// Package errors provides centralized error handling with categories that drive
// cache-fallback decisions and user-facing messages.
package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"net"
	"net/url"
	"syscall"
	"time"
)

// ErrorCategory represents the type of error for better categorization
type ErrorCategory string

const (
	// CategoryNetwork covers connectivity failures, timeouts, DNS failures and
	// HTTP 5xx responses. This is the only class eligible for cache fallback.
	CategoryNetwork ErrorCategory = "network"

	// CategoryConfiguration covers missing or invalid configuration, most
	// importantly a missing API credential.
	CategoryConfiguration ErrorCategory = "configuration"

	// CategoryNotFound covers lookups for photos that are not present, either
	// remotely (HTTP 404) or in the local cache.
	CategoryNotFound ErrorCategory = "not-found"

	// CategoryRemote covers remote-call failures that are not transient:
	// non-auth 4xx responses and malformed response bodies.
	CategoryRemote ErrorCategory = "remote-api"

	CategoryDatabase      ErrorCategory = "database"
	CategoryValidation    ErrorCategory = "validation"
	CategoryImageDownload ErrorCategory = "image-download"
	CategoryGeneric       ErrorCategory = "generic"
)

// EnhancedError wraps an error with a category and additional context.
type EnhancedError struct {
	Err       error
	Component string
	Category  ErrorCategory
	Context   map[string]any
	Timestamp time.Time
}

// Error implements the error interface
func (ee *EnhancedError) Error() string {
	return ee.Err.Error()
}

// Unwrap implements the error unwrapping interface
func (ee *EnhancedError) Unwrap() error {
	return ee.Err
}

// Is matches two enhanced errors by category so that callers can use
// errors.Is with a category sentinel.
func (ee *EnhancedError) Is(target error) bool {
	if other, ok := target.(*EnhancedError); ok {
		return ee.Category == other.Category
	}
	return Is(ee.Err, target)
}

// GetContext returns a copy of the error context.
func (ee *EnhancedError) GetContext() map[string]any {
	if ee.Context == nil {
		return nil
	}
	contextCopy := make(map[string]any, len(ee.Context))
	maps.Copy(contextCopy, ee.Context)
	return contextCopy
}

// ErrorBuilder provides a fluent interface for creating enhanced errors
type ErrorBuilder struct {
	err       error
	component string
	category  ErrorCategory
	context   map[string]any
}

// New creates a new error builder wrapping err.
func New(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// Newf creates a new formatted error builder.
func Newf(format string, args ...any) *ErrorBuilder {
	return New(fmt.Errorf(format, args...))
}

// Component sets the component name.
func (eb *ErrorBuilder) Component(component string) *ErrorBuilder {
	eb.component = component
	return eb
}

// Category sets the error category.
func (eb *ErrorBuilder) Category(category ErrorCategory) *ErrorBuilder {
	eb.category = category
	return eb
}

// Context adds context data to the error.
func (eb *ErrorBuilder) Context(key string, value any) *ErrorBuilder {
	if eb.context == nil {
		eb.context = make(map[string]any)
	}
	eb.context[key] = value
	return eb
}

// Build creates the EnhancedError.
func (eb *ErrorBuilder) Build() *EnhancedError {
	category := eb.category
	if category == "" {
		category = detectCategory(eb.err)
	}
	return &EnhancedError{
		Err:       eb.err,
		Component: eb.component,
		Category:  category,
		Context:   eb.context,
		Timestamp: time.Now(),
	}
}

// detectCategory falls back to transport-level inspection when the builder
// was given no explicit category.
func detectCategory(err error) ErrorCategory {
	if err == nil {
		return CategoryGeneric
	}
	var enhanced *EnhancedError
	if stderrors.As(err, &enhanced) && enhanced.Category != "" {
		return enhanced.Category
	}
	if isTransportError(err) {
		return CategoryNetwork
	}
	return CategoryGeneric
}

// isTransportError reports whether err originates from the network transport:
// DNS failures, refused/reset connections and timeouts of any flavor.
func isTransportError(err error) bool {
	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if stderrors.As(err, &opErr) {
		return true
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		return urlErr.Timeout() || isTransportError(urlErr.Err)
	}
	return stderrors.Is(err, syscall.ECONNREFUSED) ||
		stderrors.Is(err, syscall.ECONNRESET) ||
		stderrors.Is(err, syscall.EHOSTUNREACH)
}

// CategoryForStatus maps an HTTP status code from the remote API to an error
// category. 5xx responses count as transient network failures, 404 as not
// found, auth failures as configuration problems.
func CategoryForStatus(statusCode int) ErrorCategory {
	switch {
	case statusCode == 401 || statusCode == 403:
		return CategoryConfiguration
	case statusCode == 404:
		return CategoryNotFound
	case statusCode >= 500:
		return CategoryNetwork
	default:
		return CategoryRemote
	}
}

// IsCategory checks if an error is an EnhancedError with the specified category.
func IsCategory(err error, category ErrorCategory) bool {
	var enhanced *EnhancedError
	return As(err, &enhanced) && enhanced.Category == category
}

// IsNetwork reports whether err is a transient network error, the only class
// that makes cached data an acceptable substitute for a remote response.
// Unwrapped transport errors are classified on the fly so that callers do not
// have to route every raw error through the builder first.
func IsNetwork(err error) bool {
	if IsCategory(err, CategoryNetwork) {
		return true
	}
	var enhanced *EnhancedError
	if As(err, &enhanced) {
		return false
	}
	return isTransportError(err)
}

// IsNotFound checks if an error carries CategoryNotFound.
func IsNotFound(err error) bool {
	return IsCategory(err, CategoryNotFound)
}

// IsMissingCredential checks if an error carries CategoryConfiguration.
func IsMissingCredential(err error) bool {
	return IsCategory(err, CategoryConfiguration)
}

// Standard library passthrough functions
// These allow this package to be a drop-in replacement for the standard errors package

// NewStd creates a new standard error (passthrough to standard library)
func NewStd(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's tree matches target (passthrough to standard library)
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target (passthrough to standard library)
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err (passthrough to standard library)
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join returns an error that wraps the given errors (passthrough to standard library)
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
