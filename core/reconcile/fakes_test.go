package reconcile

import (
	"context"
	"sync"
)

// memStore is an in-memory Store that assigns its own category ids.
type memStore struct {
	mu         sync.Mutex
	nextID     uint
	categories map[string][]Category
	channels   map[uint][]Channel
	modes      map[string][]Category
	calls      []string

	clearErr   error
	replaceErr error
	channelErr error
	// dropUncategorized simulates a store that loses the synthetic bucket.
	dropUncategorized bool
}

func newMemStore() *memStore {
	return &memStore{
		categories: make(map[string][]Category),
		channels:   make(map[uint][]Channel),
		modes:      make(map[string][]Category),
	}
}

func (s *memStore) ClearAll(ctx context.Context, account *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "clear")
	if s.clearErr != nil {
		return s.clearErr
	}
	for _, c := range s.categories[account.ID] {
		delete(s.channels, c.DBID)
	}
	delete(s.categories, account.ID)
	return nil
}

func (s *memStore) ReplaceCategories(ctx context.Context, account *Account, categories []Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "categories")
	if s.replaceErr != nil {
		return s.replaceErr
	}
	saved := make([]Category, 0, len(categories))
	for _, c := range categories {
		if s.dropUncategorized && c.IsUncategorized() {
			continue
		}
		s.nextID++
		c.DBID = s.nextID
		saved = append(saved, c)
	}
	s.categories[account.ID] = saved
	return nil
}

func (s *memStore) ReadCategories(ctx context.Context, account *Account) ([]Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "read")
	return append([]Category(nil), s.categories[account.ID]...), nil
}

func (s *memStore) ReplaceChannelsForCategory(ctx context.Context, categoryDBID uint, account *Account, channels []Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "channels")
	if s.channelErr != nil {
		return s.channelErr
	}
	s.channels[categoryDBID] = append([]Channel(nil), channels...)
	return nil
}

func (s *memStore) ReplaceModeCategories(ctx context.Context, account *Account, action Action, categories []Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes[account.ID+"/"+string(action)] = append([]Category(nil), categories...)
	return nil
}

// channelsByTitle returns the saved channels of an account keyed by category title.
func (s *memStore) channelsByTitle(accountID string) map[string][]Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]Channel)
	for _, c := range s.categories[accountID] {
		out[c.Title] = s.channels[c.DBID]
	}
	return out
}

func (s *memStore) allChannels(accountID string) []Channel {
	var out []Channel
	for _, chs := range s.channelsByTitle(accountID) {
		out = append(out, chs...)
	}
	return out
}

// seed stores a prior catalog for an account.
func (s *memStore) seed(account *Account, categories []Category, channels map[string][]Channel) {
	_ = s.ReplaceCategories(context.Background(), account, categories)
	for _, c := range s.categories[account.ID] {
		s.channels[c.DBID] = channels[c.CategoryID]
	}
	s.calls = nil
}

type pageKey struct {
	category string
	page     int
}

type pageResult struct {
	channels []Channel
	hint     *Pagination
	err      error
}

// fakePortal is a scripted PortalAdapter.
type fakePortal struct {
	handshakeErr error
	token        string
	categories   map[Action][]Category
	categoryErr  error
	bulk         [][]Channel
	bulkErr      error
	pages        map[pageKey]pageResult

	mu        sync.Mutex
	bulkCalls int
	pageCalls map[string]int
	actions   []Action
}

func (f *fakePortal) Handshake(ctx context.Context, account *Account) error {
	if f.handshakeErr != nil {
		return f.handshakeErr
	}
	account.Token = f.token
	return nil
}

func (f *fakePortal) ListCategories(ctx context.Context, account *Account) ([]Category, error) {
	f.mu.Lock()
	f.actions = append(f.actions, account.Action)
	f.mu.Unlock()
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	return f.categories[account.Action], nil
}

func (f *fakePortal) ListAllChannels(ctx context.Context, account *Account, page, perPage *int) ([]Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.bulkCalls
	f.bulkCalls++
	if f.bulkErr != nil {
		return nil, f.bulkErr
	}
	if i < len(f.bulk) {
		return f.bulk[i], nil
	}
	return nil, nil
}

func (f *fakePortal) ListCategoryPage(ctx context.Context, account *Account, categoryID string, page int) ([]Channel, *Pagination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pageCalls == nil {
		f.pageCalls = make(map[string]int)
	}
	f.pageCalls[categoryID]++
	r := f.pages[pageKey{categoryID, page}]
	return r.channels, r.hint, r.err
}

// fakeCatalog is a scripted CatalogAdapter.
type fakeCatalog struct {
	categories   map[Action][]Category
	categoryErr  error
	global       []Channel
	globalErr    error
	perCategory  map[string][]Channel
	categoryErrs map[string]error

	calls []string
}

func (f *fakeCatalog) ListCategories(ctx context.Context, account *Account) ([]Category, error) {
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	return f.categories[account.Action], nil
}

func (f *fakeCatalog) ListChannels(ctx context.Context, account *Account) ([]Channel, error) {
	f.calls = append(f.calls, "global")
	return f.global, f.globalErr
}

func (f *fakeCatalog) ListCategoryChannels(ctx context.Context, account *Account, categoryID string) ([]Channel, error) {
	f.calls = append(f.calls, categoryID)
	if err := f.categoryErrs[categoryID]; err != nil {
		return nil, err
	}
	return f.perCategory[categoryID], nil
}

// fakeEntries is a scripted EntrySource.
type fakeEntries struct {
	categories  []Category
	categoryErr error
	entries     []PlaylistEntry
	// failFirst makes the first n ListEntries calls fail.
	failFirst int
	entryErr  error
	calls     int
}

func (f *fakeEntries) ListCategories(ctx context.Context, account *Account) ([]Category, error) {
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	if f.categories == nil {
		return PlaylistCategories(f.entries), nil
	}
	return f.categories, nil
}

func (f *fakeEntries) ListEntries(ctx context.Context, account *Account) ([]PlaylistEntry, error) {
	f.calls++
	if f.calls <= f.failFirst {
		return nil, f.entryErr
	}
	return f.entries, nil
}

// recorder collects progress lines.
type recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *recorder) progress() Progress {
	return func(message string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.lines = append(r.lines, message)
	}
}

func (r *recorder) contains(prefix string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lines {
		if len(l) >= len(prefix) && l[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

func ch(id, category string) Channel {
	return Channel{ChannelID: id, CategoryID: category, Name: "Channel " + id, Cmd: "ffmpeg http://example.test/" + id}
}

func cat(id, title string) Category {
	return Category{CategoryID: id, Title: title}
}
