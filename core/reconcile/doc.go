// Package reconcile keeps an account's cached IPTV catalog in sync with its backend.
//
// A reload picks a Strategy for the account's backend kind, fetches categories
// and channels through the backend adapters, reconciles them and commits the
// result to a Store. The cache is only replaced once a non-empty result is in
// hand; an empty or failed fetch leaves the previous catalog in place.
//
// # Strategies
//
//   - PortalStrategy (stalker_portal): handshake, bulk get_all_channels over
//     three request shapes, then a bounded per-category page walk.
//   - CatalogStrategy (xtream_api): global stream list, then one request per
//     category. Failures of every category request are a hard error.
//   - FeedStrategy (rss_feed) and PlaylistStrategy (m3u8_local, m3u8_url):
//     channels are extracted per category from the source's entries.
//
// Live reloads of both portal kinds also refresh the vod and series category
// trees. The account's action is switched for that sweep and always restored.
//
// # Orphans
//
// Channels that claim a blank or unknown category are filed under a synthetic
// "Uncategorized" category, added to the commit set only when needed.
//
// # Usage Example
//
//	selector := reconcile.NewSelector(store, reconcile.Adapters{
//	    Portal:   stalker.NewClient(cfg, logger),
//	    Catalog:  xtream.NewClient(cfg, logger),
//	    Feed:     rss.NewSource(opener, cache),
//	    Playlist: playlist.NewSource(opener, cache),
//	})
//	engine := reconcile.NewEngine(selector, locker, logger)
//	result, err := engine.Reload(ctx, account, func(line string) { fmt.Println(line) })
package reconcile
