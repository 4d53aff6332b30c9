package cache

import (
	"sync"
	"time"

	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"

	"github.com/photosieve/gallery-common/report"
	"github.com/photosieve/gallery-common/source"
	"github.com/photosieve/gallery-common/thumbnail"
	"github.com/photosieve/gallery-common/utils"
)

// ImageCache resolves display URLs for gallery image records and keeps a
// bounded in-memory cache of successfully probed images across analysis
// sessions. The cache never fails toward its caller; every failure path
// degrades to the embedded placeholder URL plus a throttled log entry.
type ImageCache struct {
	config CacheConfig

	sessions        []*SessionCache // creation order, the active session is last
	activeSessionID string

	failedCandidates map[string]bool // (key, url) pairs known to fail this run
	sequence         uint64          // insertion order, breaks eviction ties

	reporter        report.ErrorReporter
	prober          Prober
	thumbnailLookup thumbnail.Lookup // can be nil

	probeWait sync.WaitGroup
	mutex     sync.Mutex // lock for sessions, failedCandidates and the eviction scan
}

// NewImageCache creates a new ImageCache with a filesystem prober and a
// throttled reporter built from the configuration. thumbnailLookup can be
// nil when no local-thumbnail service is available.
func NewImageCache(config CacheConfig, thumbnailLookup thumbnail.Lookup) *ImageCache {
	reporter := report.NewThrottledReporter(config.ErrorSuppressionWindow)
	return NewImageCacheWithProber(config, thumbnailLookup, NewFileProber(), reporter)
}

// NewImageCacheWithProber creates a new ImageCache with the given prober
// and reporter
func NewImageCacheWithProber(config CacheConfig, thumbnailLookup thumbnail.Lookup, prober Prober, reporter report.ErrorReporter) *ImageCache {
	return &ImageCache{
		config: config,

		sessions:        []*SessionCache{},
		activeSessionID: "",

		failedCandidates: map[string]bool{},

		reporter:        reporter,
		prober:          prober,
		thumbnailLookup: thumbnailLookup,
	}
}

// Release waits for in-flight probes and drops all sessions
func (cache *ImageCache) Release() {
	cache.probeWait.Wait()

	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	for _, session := range cache.sessions {
		session.release()
	}

	cache.sessions = []*SessionCache{}
	cache.activeSessionID = ""

	cache.reporter.Release()
}

// WaitForProbes waits until all scheduled probes have completed
func (cache *ImageCache) WaitForProbes() {
	cache.probeWait.Wait()
}

// StartSession creates a new active SessionCache for the given analysis
// session and schedules probes for a bounded prefix of the supplied records
// to pre-warm the cache. It returns the session ID (generated when empty)
// once pre-warming has been scheduled, without waiting for probes to finish.
func (cache *ImageCache) StartSession(sessionID string, records []*source.ImageRecord) string {
	logger := log.WithFields(log.Fields{
		"package":  "cache",
		"struct":   "ImageCache",
		"function": "StartSession",
	})

	if sessionID == "" {
		sessionID = xid.New().String()
	}

	now := time.Now()

	cache.mutex.Lock()

	for len(cache.sessions) >= cache.config.MaxSessions {
		cache.dropOldestSessionNoLock()
	}

	session := newSessionCache(sessionID, now)
	cache.sessions = append(cache.sessions, session)
	cache.activeSessionID = sessionID

	cache.expireSessionsNoLock(now)

	cache.mutex.Unlock()

	logger.Debugf("started session %s with %d records", sessionID, len(records))

	prewarm := len(records)
	if prewarm > cache.config.PrewarmRecords {
		prewarm = cache.config.PrewarmRecords
	}

	for _, record := range records[:prewarm] {
		resolution := cache.resolveRecord(record)
		if resolution.Kind == source.KindLocal {
			cache.scheduleProbe(sessionID, record.Filename, resolution.URL, resolution.Tier)
		}
	}

	return sessionID
}

// GetImageURL returns a displayable URL for the given record. A live cache
// entry wins and refreshes its access time; otherwise the record's candidate
// sources are resolved and returned immediately, with a background probe
// scheduled for a local winner. Never blocks and never fails; the worst case
// is the placeholder URL.
func (cache *ImageCache) GetImageURL(record *source.ImageRecord) string {
	key := record.Filename

	now := time.Now()

	cache.mutex.Lock()
	for i := len(cache.sessions) - 1; i >= 0; i-- {
		session := cache.sessions[i]
		if entry, ok := session.entries[key]; ok {
			entry.lastAccessTime = now
			session.lastAccessTime = now

			url := entry.url
			cache.mutex.Unlock()
			return url
		}
	}
	sessionID := cache.activeSessionID
	cache.mutex.Unlock()

	cache.fillCandidates(record)

	resolution := cache.resolveRecord(record)
	if resolution.Tier == source.TierPlaceholder {
		cache.reporter.ReportOnce(key, "resolve", "no usable candidate source")
		return resolution.URL
	}

	if resolution.Kind == source.KindLocal {
		cache.scheduleProbe(sessionID, key, resolution.URL, resolution.Tier)
	}

	return resolution.URL
}

// GetTotalEntries returns the number of entries across all sessions
func (cache *ImageCache) GetTotalEntries() int {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	return cache.totalEntriesNoLock()
}

// GetSessionCount returns the number of sessions held
func (cache *ImageCache) GetSessionCount() int {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	return len(cache.sessions)
}

// GetActiveSessionID returns the id of the session accepting new entries
func (cache *ImageCache) GetActiveSessionID() string {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	return cache.activeSessionID
}

// HasEntry checks if any session holds an entry for the given key
func (cache *ImageCache) HasEntry(key string) bool {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	for _, session := range cache.sessions {
		if _, ok := session.entries[key]; ok {
			return true
		}
	}
	return false
}

// GetSessionIDs returns the ids of all held sessions in creation order
func (cache *ImageCache) GetSessionIDs() []string {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	ids := []string{}
	for _, session := range cache.sessions {
		ids = append(ids, session.id)
	}
	return ids
}

// fillCandidates lazily consults the thumbnail lookup service for a record
// that carries no usable candidate source
func (cache *ImageCache) fillCandidates(record *source.ImageRecord) {
	if cache.thumbnailLookup == nil {
		return
	}

	resolution := cache.resolveRecord(record)
	if resolution.Tier != source.TierPlaceholder {
		return
	}

	paths, err := cache.thumbnailLookup.LookupThumbnails(record.Filename, record.OriginalPath)
	if err != nil {
		cache.reporter.ReportOnce(record.Filename, "thumbnail-lookup", err.Error())
		return
	}

	record.ThumbnailPath = paths.ThumbnailPath
	record.CompressedPath = paths.CompressedPath
	record.MicroThumbnailPath = paths.MicroThumbnailPath
}

// resolveRecord runs the resolution chain, passing over candidate sources
// that already failed a probe for this record during this run
func (cache *ImageCache) resolveRecord(record *source.ImageRecord) source.Resolution {
	return source.ResolveSkipping(record, func(url string) bool {
		return cache.isFailedCandidate(record.Filename, url)
	})
}

func (cache *ImageCache) isFailedCandidate(key string, url string) bool {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	return cache.failedCandidates[utils.MakePairHash(key, url)]
}

func (cache *ImageCache) getSessionNoLock(sessionID string) *SessionCache {
	for _, session := range cache.sessions {
		if session.id == sessionID {
			return session
		}
	}
	return nil
}

func (cache *ImageCache) totalEntriesNoLock() int {
	total := 0
	for _, session := range cache.sessions {
		total += len(session.entries)
	}
	return total
}

// evictOneNoLock removes the least recently accessed entry across all
// sessions when the total entry bound is reached. Ties on access time are
// broken by the smallest insertion sequence. A linear scan is fine at this
// cache's scale.
func (cache *ImageCache) evictOneNoLock() {
	if cache.totalEntriesNoLock() < cache.config.MaxEntriesTotal {
		return
	}

	var victim *CacheEntry
	var victimSession *SessionCache

	for _, session := range cache.sessions {
		for _, entry := range session.entries {
			if victim == nil {
				victim = entry
				victimSession = session
				continue
			}

			if entry.lastAccessTime.Before(victim.lastAccessTime) ||
				(entry.lastAccessTime.Equal(victim.lastAccessTime) && entry.sequence < victim.sequence) {
				victim = entry
				victimSession = session
			}
		}
	}

	if victim != nil {
		delete(victimSession.entries, victim.key)
	}
}

func (cache *ImageCache) dropOldestSessionNoLock() {
	if len(cache.sessions) == 0 {
		return
	}

	oldest := 0
	for i, session := range cache.sessions {
		if session.lastAccessTime.Before(cache.sessions[oldest].lastAccessTime) {
			oldest = i
		}
	}

	cache.dropSessionNoLock(oldest)
}

func (cache *ImageCache) expireSessionsNoLock(now time.Time) {
	for i := len(cache.sessions) - 1; i >= 0; i-- {
		session := cache.sessions[i]
		if now.Sub(session.lastAccessTime) > cache.config.MaxSessionAge {
			cache.dropSessionNoLock(i)
		}
	}
}

func (cache *ImageCache) dropSessionNoLock(index int) {
	session := cache.sessions[index]
	session.release()

	cache.sessions = append(cache.sessions[:index], cache.sessions[index+1:]...)

	if cache.activeSessionID == session.id {
		cache.activeSessionID = ""
	}
}
