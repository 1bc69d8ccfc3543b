package errors

import (
	stderrors "errors"
	"net"
	"net/url"
	"syscall"
)

// User-facing messages per error class. The UI layers (CLI and HTTP API) show
// these instead of raw error strings.
const (
	msgNoConnection      = "No internet connection"
	msgTimeout           = "Connection timeout. Please try again"
	msgNetworkGeneric    = "Network error. Please check your connection and try again"
	msgMissingCredential = "API key not found"
	msgNotFound          = "Photo not found"
	msgGeneric           = "An error occurred"
)

// UserMessage converts an error into a human-readable message. Network errors
// are distinguished into no-connection and timeout variants; other categories
// map to fixed strings, and anything else falls back to the error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case IsNetwork(err):
		if isTimeout(err) {
			return msgTimeout
		}
		if isUnreachable(err) {
			return msgNoConnection
		}
		return msgNetworkGeneric
	case IsMissingCredential(err):
		return msgMissingCredential
	case IsNotFound(err):
		return msgNotFound
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgGeneric
}

func isTimeout(err error) bool {
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	return stderrors.As(err, &urlErr) && urlErr.Timeout()
}

func isUnreachable(err error) bool {
	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) {
		return true
	}
	return stderrors.Is(err, syscall.ECONNREFUSED) ||
		stderrors.Is(err, syscall.EHOSTUNREACH)
}
