package source

// ImageRecord describes one analyzed image in a gallery session.
// Candidate fields are ranked by fidelity and locality; each holds a local
// filesystem path, a remote URL, or nothing. The record is supplied by the
// results provider and identified by Filename.
type ImageRecord struct {
	Filename     string
	OriginalPath string // original source path, used for thumbnail lookup fallback matching

	MemoryURL          string // memory-resident representation, already displayable
	ThumbnailPath      string
	CompressedPath     string
	RemoteOriginalURL  string
	SourceURL          string // generic local path or remote URL
	MicroThumbnailPath string
}
