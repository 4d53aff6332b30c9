package report

// ErrorReporter surfaces failure notifications for gallery items
type ErrorReporter interface {
	Release()

	// ReportOnce surfaces a failure for the given item and context, returning
	// true when the message was surfaced and false when it was suppressed
	ReportOnce(key string, context string, message string) bool
}
