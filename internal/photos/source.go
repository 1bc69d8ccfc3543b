package photos

import "context"

// FetchResult is one page of photos as delivered by the remote source.
type FetchResult struct {
	Photos       []Photo
	Page         int
	PerPage      int
	TotalResults int
	HasNext      bool // remote indicated another page exists
}

// Source is the remote paged photo API. Implementations live outside this
// package; the loader only depends on this contract.
type Source interface {
	// Curated fetches one page of the curated feed.
	Curated(ctx context.Context, apiKey string, page, perPage int) (FetchResult, error)

	// Search fetches one page of search results for the given query.
	Search(ctx context.Context, apiKey, query string, page, perPage int) (FetchResult, error)

	// PhotoByID fetches a single photo.
	PhotoByID(ctx context.Context, apiKey string, id int) (Photo, error)
}

// CredentialProvider supplies the remote API credential. A blank key means
// remote calls must not be attempted.
type CredentialProvider interface {
	APIKey() string
}
