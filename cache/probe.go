package cache

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/photosieve/gallery-common/source"
	"github.com/photosieve/gallery-common/utils"
)

// Prober verifies that a candidate image loads and reports its pixel
// dimensions
type Prober interface {
	Probe(path string) (int, int, error)
}

type fileProber struct{}

// NewFileProber creates a Prober that decodes image headers from the local
// filesystem
func NewFileProber() Prober {
	return &fileProber{}
}

// Probe decodes the image header at the given path
func (prober *fileProber) Probe(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, xerrors.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	// header-only decode, enough for a width*height cost estimate
	config, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, xerrors.Errorf("failed to decode image %s: %w", path, err)
	}

	return config.Width, config.Height, nil
}

// scheduleProbe asynchronously verifies that the candidate at path loads,
// then records it in the session it was scheduled for. The caller observes
// nothing; completion is resolved exactly once through the probe wait group.
func (cache *ImageCache) scheduleProbe(sessionID string, key string, path string, tier source.Tier) {
	failedKey := utils.MakePairHash(key, path)

	cache.mutex.Lock()
	if cache.failedCandidates[failedKey] {
		// known bad for this run, never retried
		cache.mutex.Unlock()
		return
	}
	cache.mutex.Unlock()

	cache.probeWait.Add(1)

	go func() {
		defer cache.probeWait.Done()

		logger := log.WithFields(log.Fields{
			"package":  "cache",
			"struct":   "ImageCache",
			"function": "scheduleProbe",
		})

		defer utils.StackTraceFromPanic(logger)

		width, height, err := cache.prober.Probe(path)
		if err != nil {
			logger.WithError(err).Debugf("failed to probe %s for %s", path, key)

			cache.mutex.Lock()
			cache.failedCandidates[failedKey] = true
			cache.mutex.Unlock()

			cache.reporter.ReportOnce(key, "probe", err.Error())
			return
		}

		size := int64(width) * int64(height) * 4 // RGBA worst case

		cache.mutex.Lock()
		defer cache.mutex.Unlock()

		session := cache.getSessionNoLock(sessionID)
		if session == nil {
			// the session was torn down while the probe was in flight,
			// drop the write instead of resurrecting it
			return
		}

		cache.evictOneNoLock()

		cache.sequence++
		session.entries[key] = &CacheEntry{
			key:            key,
			url:            path,
			tier:           tier,
			size:           size,
			sequence:       cache.sequence,
			lastAccessTime: time.Now(),
		}
	}()
}
