package reconcile

import "errors"

var (
	// ErrUnknownKind is returned by the selector for an empty or unsupported backend kind.
	ErrUnknownKind = errors.New("unknown account kind")

	// ErrNothingToCommit guards the commit protocol against replacing a cache with nothing.
	ErrNothingToCommit = errors.New("refusing to commit an empty channel set")

	// ErrAllCategoryFetchesFailed means every per-category channel request errored.
	ErrAllCategoryFetchesFailed = errors.New("All category channel requests failed.")

	// ErrNoUsableChannels means some per-category requests errored and the rest returned nothing.
	ErrNoUsableChannels = errors.New("No usable channels loaded after category fetch failures.")

	// ErrMalformedResponse means a backend answered but its channel payload could not be read.
	ErrMalformedResponse = errors.New("malformed channel response")

	// ErrMissingUncategorized means the store did not return the orphan bucket after it was written.
	ErrMissingUncategorized = errors.New("uncategorized category missing after save")
)
