package errors

import (
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderWrapsAndCategorizes(t *testing.T) {
	base := NewStd("remote call failed")
	err := New(base).
		Component("photos").
		Category(CategoryNetwork).
		Context("page", 2).
		Build()

	assert.Equal(t, "remote call failed", err.Error())
	assert.Equal(t, CategoryNetwork, err.Category)
	assert.Equal(t, "photos", err.Component)
	assert.Equal(t, 2, err.GetContext()["page"])
	assert.True(t, Is(err, base), "Enhanced error should unwrap to its base")
	assert.False(t, err.Timestamp.IsZero())
}

func TestNewfWrapsCause(t *testing.T) {
	cause := NewStd("boom")
	err := Newf("fetching page: %w", cause).Build()

	assert.True(t, Is(err, cause))
	assert.Equal(t, "fetching page: boom", err.Error())
}

func TestDetectCategoryFromTransportError(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"dns error", &net.DNSError{Err: "no such host", Name: "api.pexels.com"}},
		{"op error", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}},
		{"url error", &url.Error{Op: "Get", URL: "https://api.pexels.com", Err: syscall.ECONNRESET}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			built := New(tc.err).Build()
			assert.Equal(t, CategoryNetwork, built.Category)
			assert.True(t, IsNetwork(built))
		})
	}
}

func TestIsNetworkOnRawTransportError(t *testing.T) {
	raw := &net.OpError{Op: "dial", Err: syscall.EHOSTUNREACH}
	assert.True(t, IsNetwork(raw), "Unwrapped transport errors count as network errors")
	assert.True(t, IsNetwork(fmt.Errorf("request failed: %w", raw)))

	assert.False(t, IsNetwork(NewStd("some other failure")))
}

func TestIsNetworkRespectsExplicitCategory(t *testing.T) {
	// Once an error is categorized, the category wins over the cause chain.
	err := Newf("bad response body").Category(CategoryRemote).Build()
	assert.False(t, IsNetwork(err))
}

func TestCategoryForStatus(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorCategory
	}{
		{401, CategoryConfiguration},
		{403, CategoryConfiguration},
		{404, CategoryNotFound},
		{429, CategoryRemote},
		{400, CategoryRemote},
		{500, CategoryNetwork},
		{503, CategoryNetwork},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CategoryForStatus(tc.status), "status %d", tc.status)
	}
}

func TestCategoryPredicates(t *testing.T) {
	notFound := Newf("photo 42 not found in bookmarks").Category(CategoryNotFound).Build()
	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNetwork(notFound))

	missing := Newf("API key not found").Category(CategoryConfiguration).Build()
	assert.True(t, IsMissingCredential(missing))
	assert.False(t, IsNotFound(missing))

	// Predicates see through plain wrapping.
	wrapped := fmt.Errorf("loading detail: %w", notFound)
	assert.True(t, IsNotFound(wrapped))
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil",
			err:  nil,
			want: "",
		},
		{
			name: "unreachable",
			err:  New(&net.OpError{Op: "dial", Err: syscall.EHOSTUNREACH}).Build(),
			want: "No internet connection",
		},
		{
			name: "timeout",
			err:  New(&net.DNSError{Err: "lookup timeout", IsTimeout: true}).Build(),
			want: "Connection timeout. Please try again",
		},
		{
			name: "generic network",
			err:  Newf("HTTP request failed").Category(CategoryNetwork).Build(),
			want: "Network error. Please check your connection and try again",
		},
		{
			name: "missing credential",
			err:  Newf("API key not found").Category(CategoryConfiguration).Build(),
			want: "API key not found",
		},
		{
			name: "not found",
			err:  Newf("photo 42 not found in bookmarks").Category(CategoryNotFound).Build(),
			want: "Photo not found",
		},
		{
			name: "fallback to error text",
			err:  NewStd("500 internal things"),
			want: "500 internal things",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, UserMessage(tc.err))
		})
	}
}

func TestEnhancedErrorIsMatchesByCategory(t *testing.T) {
	a := Newf("first").Category(CategoryDatabase).Build()
	b := Newf("second").Category(CategoryDatabase).Build()
	c := Newf("third").Category(CategoryNetwork).Build()

	require.True(t, Is(a, b))
	assert.False(t, Is(a, c))
}
