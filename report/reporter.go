package report

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"github.com/photosieve/gallery-common/utils"
)

// ThrottledReporter deduplicates repeated failure notifications for the same
// (item, context) pair within a suppression window. A suppressed pair becomes
// reportable again once the window elapses, so a recurring failure class is
// bounded in log volume without being permanently silenced.
type ThrottledReporter struct {
	window time.Duration
	seen   *gocache.Cache
}

// NewThrottledReporter creates a new ThrottledReporter with the given
// suppression window
func NewThrottledReporter(window time.Duration) *ThrottledReporter {
	return &ThrottledReporter{
		window: window,
		seen:   gocache.New(window, window),
	}
}

// Release releases resources used
func (reporter *ThrottledReporter) Release() {
	reporter.seen.Flush()
}

// ReportOnce surfaces a failure message once per (key, context) pair per
// suppression window
func (reporter *ThrottledReporter) ReportOnce(key string, context string, message string) bool {
	logger := log.WithFields(log.Fields{
		"package":  "report",
		"struct":   "ThrottledReporter",
		"function": "ReportOnce",
	})

	compositeKey := utils.MakePairHash(key, context)

	if _, found := reporter.seen.Get(compositeKey); found {
		return false
	}

	reporter.seen.Set(compositeKey, true, gocache.DefaultExpiration)

	logger.Errorf("%s failed for %s: %s", context, key, message)
	return true
}
