package source

// CandidateKind is the kind of a classified candidate source
type CandidateKind int

const (
	// KindEmpty means the candidate is absent or unusable
	KindEmpty CandidateKind = iota
	// KindLocal means the candidate is a local filesystem path
	KindLocal
	// KindRemote means the candidate is a remote URL
	KindRemote
)

// Candidate is a candidate source classified at the system boundary
type Candidate struct {
	Kind  CandidateKind
	Value string
}

// Classify classifies a raw candidate value as a local path, a remote URL,
// or empty. The literal texts "null" and "undefined" are treated as empty,
// as upstream serialization can propagate them as field values.
func Classify(value string) Candidate {
	if value == "" || value == "null" || value == "undefined" {
		return Candidate{
			Kind: KindEmpty,
		}
	}

	if value[0] == '/' || value[0] == '\\' {
		return Candidate{
			Kind:  KindLocal,
			Value: value,
		}
	}

	if hasURIScheme(value) {
		return Candidate{
			Kind:  KindRemote,
			Value: value,
		}
	}

	return Candidate{
		Kind: KindEmpty,
	}
}

// hasURIScheme checks for a leading URI scheme (RFC 3986 form).
// Schemes shorter than two characters are rejected so Windows drive
// prefixes like "C:" are not mistaken for URLs.
func hasURIScheme(value string) bool {
	if !isAlpha(value[0]) {
		return false
	}

	for i := 1; i < len(value); i++ {
		c := value[i]
		if c == ':' {
			return i >= 2
		}

		if !isAlpha(c) && !isDigit(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}

	return false
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
