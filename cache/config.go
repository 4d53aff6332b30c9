package cache

import (
	"time"
)

const (
	// MaxCacheEntriesDefault is the default bound on entries across all sessions
	MaxCacheEntriesDefault int = 50
	// MaxCacheSessionsDefault is the default bound on concurrently held sessions
	MaxCacheSessionsDefault int = 3
	// MaxSessionAgeDefault is the default age at which an idle session expires
	MaxSessionAgeDefault time.Duration = 30 * time.Minute
	// ErrorSuppressionWindowDefault is the default window during which a repeated
	// failure for the same item and context is not reported again
	ErrorSuppressionWindowDefault time.Duration = 60 * time.Second
	// PrewarmRecordsDefault is the default number of leading records probed
	// when a session starts
	PrewarmRecordsDefault int = 20
)

// CacheConfig is a configuration for ImageCache
type CacheConfig struct {
	MaxEntriesTotal        int
	MaxSessions            int
	MaxSessionAge          time.Duration
	ErrorSuppressionWindow time.Duration
	PrewarmRecords         int
}

// NewDefaultCacheConfig creates a CacheConfig with default values
func NewDefaultCacheConfig() CacheConfig {
	return CacheConfig{
		MaxEntriesTotal:        MaxCacheEntriesDefault,
		MaxSessions:            MaxCacheSessionsDefault,
		MaxSessionAge:          MaxSessionAgeDefault,
		ErrorSuppressionWindow: ErrorSuppressionWindowDefault,
		PrewarmRecords:         PrewarmRecordsDefault,
	}
}
