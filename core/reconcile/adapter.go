package reconcile

import "context"

// CategorySource lists the categories of an account for its current Action.
type CategorySource interface {
	ListCategories(ctx context.Context, account *Account) ([]Category, error)
}

// PortalAdapter is implemented by session-based portal backends.
type PortalAdapter interface {
	CategorySource

	// Handshake opens a session and stores its token on the account.
	Handshake(ctx context.Context, account *Account) error

	// ListAllChannels issues a single get_all_channels call.
	// page and perPage are omitted from the request when nil.
	ListAllChannels(ctx context.Context, account *Account, page, perPage *int) ([]Channel, error)

	// ListCategoryPage fetches one page of a category. The pagination hint
	// may be nil when the backend does not report one.
	ListCategoryPage(ctx context.Context, account *Account, categoryID string, page int) ([]Channel, *Pagination, error)
}

// CatalogAdapter is implemented by REST catalog backends.
type CatalogAdapter interface {
	CategorySource

	// ListChannels returns the global live channel list.
	ListChannels(ctx context.Context, account *Account) ([]Channel, error)

	// ListCategoryChannels returns the channels of a single category, unpaged.
	ListCategoryChannels(ctx context.Context, account *Account, categoryID string) ([]Channel, error)
}

// EntrySource is implemented by playlist and feed backends.
type EntrySource interface {
	CategorySource

	// ListEntries returns every entry of the account's playlist or feed.
	ListEntries(ctx context.Context, account *Account) ([]PlaylistEntry, error)
}

// Store persists the catalog. Implementations assign their own category ids,
// which is why categories are read back after being written.
type Store interface {
	// ClearAll removes the live categories and channels of an account.
	ClearAll(ctx context.Context, account *Account) error

	// ReplaceCategories replaces the live categories of an account.
	ReplaceCategories(ctx context.Context, account *Account, categories []Category) error

	// ReadCategories returns the saved live categories with DBID populated.
	ReadCategories(ctx context.Context, account *Account) ([]Category, error)

	// ReplaceChannelsForCategory replaces the channels saved under a store category id.
	ReplaceChannelsForCategory(ctx context.Context, categoryDBID uint, account *Account, channels []Channel) error

	// ReplaceModeCategories replaces the vod or series categories of an account.
	ReplaceModeCategories(ctx context.Context, account *Account, action Action, categories []Category) error
}
