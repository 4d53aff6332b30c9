package thumbnail

// Paths holds the local derivative paths known for one gallery item.
// Any field can be empty when the derivative was never generated.
type Paths struct {
	ThumbnailPath      string
	CompressedPath     string
	MicroThumbnailPath string
}

// Lookup finds local thumbnail derivatives for a gallery item. The original
// path is optional and used for fallback matching when the filename alone
// is ambiguous.
type Lookup interface {
	LookupThumbnails(filename string, originalPath string) (*Paths, error)
}
