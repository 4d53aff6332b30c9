package source

// Tier is the ranked category of source a resolved URL came from
type Tier string

const (
	// TierMemory is a memory-resident representation
	TierMemory Tier = "memory"
	// TierThumbnail is a local thumbnail
	TierThumbnail Tier = "thumbnail"
	// TierCompressed is a local compressed copy
	TierCompressed Tier = "compressed"
	// TierGeneric is an original or otherwise untyped source
	TierGeneric Tier = "generic"
	// TierMicro is a local micro-thumbnail
	TierMicro Tier = "micro"
	// TierPlaceholder is the embedded fallback image
	TierPlaceholder Tier = "placeholder"
)

// PlaceholderURL is an embedded 1x1 transparent GIF, returned when no
// candidate source of a record is usable.
const PlaceholderURL = "data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7"

// Resolution is the outcome of resolving an image record to a display URL
type Resolution struct {
	Tier Tier
	URL  string
	Kind CandidateKind
}

// Resolve picks the first usable candidate source of a record, local copies
// and higher fidelity first. A local winner is worth probing into the memory
// cache; a remote winner is returned as-is since it needs no further
// resolution. When nothing is usable the placeholder resolution is returned.
func Resolve(record *ImageRecord) Resolution {
	return ResolveSkipping(record, nil)
}

// ResolveSkipping resolves like Resolve but passes over candidates the skip
// predicate rejects, e.g., sources known to fail for this record
func ResolveSkipping(record *ImageRecord, skip func(url string) bool) Resolution {
	candidates := []struct {
		tier  Tier
		value string
	}{
		{TierMemory, record.MemoryURL},
		{TierThumbnail, record.ThumbnailPath},
		{TierCompressed, record.CompressedPath},
		{TierGeneric, record.RemoteOriginalURL},
		{TierGeneric, record.SourceURL},
		{TierMicro, record.MicroThumbnailPath},
	}

	for _, candidate := range candidates {
		classified := Classify(candidate.value)
		if classified.Kind == KindEmpty {
			continue
		}

		if skip != nil && skip(classified.Value) {
			continue
		}

		return Resolution{
			Tier: candidate.tier,
			URL:  classified.Value,
			Kind: classified.Kind,
		}
	}

	return Resolution{
		Tier: TierPlaceholder,
		URL:  PlaceholderURL,
		Kind: KindEmpty,
	}
}
