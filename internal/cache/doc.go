// Package cache provides the keyed client-side cache for backend records.
//
// Entries are keyed by (kind, id); a collection entry uses an empty id.
// Invalidation marks entries stale rather than evicting them, so the next
// read re-fetches lazily. Store layers read-through fetching on top of
// the cache and deduplicates concurrent reads of the same key. The cache
// is an explicit, injectable object with no package-level singleton.
package cache
