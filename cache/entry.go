package cache

import (
	"time"

	"github.com/photosieve/gallery-common/source"
)

// CacheEntry is a successfully probed image held in memory for a session.
// It is owned by the SessionCache that created it and is immutable except
// for its last access time, which is bumped on every read hit.
type CacheEntry struct {
	key            string
	url            string
	tier           source.Tier
	size           int64 // estimated memory cost in bytes, RGBA worst case
	sequence       uint64
	lastAccessTime time.Time
}

// GetKey returns key of the entry
func (entry *CacheEntry) GetKey() string {
	return entry.key
}

// GetURL returns the resolved display URL of the entry
func (entry *CacheEntry) GetURL() string {
	return entry.url
}

// GetTier returns the source tier of the entry
func (entry *CacheEntry) GetTier() source.Tier {
	return entry.tier
}

// GetSize returns the estimated memory cost of the entry
func (entry *CacheEntry) GetSize() int64 {
	return entry.size
}

// GetLastAccessTime returns last access time of the entry
func (entry *CacheEntry) GetLastAccessTime() time.Time {
	return entry.lastAccessTime
}

// SessionCache holds the probed entries of one analysis session. Exactly one
// session is active at a time, the most recently started; older sessions stay
// readable until evicted by the session bound or by age. Field access is
// guarded by the owning ImageCache mutex.
type SessionCache struct {
	id             string
	entries        map[string]*CacheEntry
	lastAccessTime time.Time
	expired        bool
}

func newSessionCache(id string, now time.Time) *SessionCache {
	return &SessionCache{
		id:             id,
		entries:        map[string]*CacheEntry{},
		lastAccessTime: now,
		expired:        false,
	}
}

// GetID returns id of the session
func (session *SessionCache) GetID() string {
	return session.id
}

// GetEntryCount returns the number of entries held by the session
func (session *SessionCache) GetEntryCount() int {
	return len(session.entries)
}

// GetLastAccessTime returns last access time of the session
func (session *SessionCache) GetLastAccessTime() time.Time {
	return session.lastAccessTime
}

// IsExpired returns whether the session was dropped from its cache
func (session *SessionCache) IsExpired() bool {
	return session.expired
}

func (session *SessionCache) release() {
	session.expired = true
	session.entries = map[string]*CacheEntry{}
}
