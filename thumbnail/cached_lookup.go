package thumbnail

import (
	lrucache "github.com/hashicorp/golang-lru"
	"golang.org/x/xerrors"

	"github.com/photosieve/gallery-common/utils"
)

// CachedLookup implements Lookup, memoizing successful lookups of an
// underlying Lookup in a bounded LRU cache. Failed lookups are not
// memoized and pass through on every call.
type CachedLookup struct {
	lookup Lookup
	cache  *lrucache.Cache
}

// NewCachedLookup creates a new CachedLookup holding up to cacheSize
// lookup results
func NewCachedLookup(lookup Lookup, cacheSize int) (*CachedLookup, error) {
	lruCache, err := lrucache.New(cacheSize)
	if err != nil {
		return nil, xerrors.Errorf("failed to create LRU cache: %w", err)
	}

	return &CachedLookup{
		lookup: lookup,
		cache:  lruCache,
	}, nil
}

// LookupThumbnails returns the memoized derivative paths for the given
// filename, querying the underlying Lookup on a cache miss
func (lookup *CachedLookup) LookupThumbnails(filename string, originalPath string) (*Paths, error) {
	cacheKey := utils.MakePairHash(filename, originalPath)

	if cached, ok := lookup.cache.Get(cacheKey); ok {
		if paths, ok := cached.(*Paths); ok {
			return paths, nil
		}
	}

	paths, err := lookup.lookup.LookupThumbnails(filename, originalPath)
	if err != nil {
		return nil, err
	}

	lookup.cache.Add(cacheKey, paths)
	return paths, nil
}
