package utils

import (
	"crypto/sha1"
	"encoding/hex"
)

// MakeHash returns hash string from plain text
func MakeHash(s string) string {
	hash := sha1.New()
	hash.Write([]byte(s))
	hashBytes := hash.Sum(nil)
	return hex.EncodeToString(hashBytes)
}

// MakePairHash returns hash string for a pair of texts, e.g., a cache key
// and a candidate URL. The pair is length-delimited so ("ab", "c") and
// ("a", "bc") never collide.
func MakePairHash(s1 string, s2 string) string {
	hash := sha1.New()
	hash.Write([]byte{byte(len(s1) >> 8), byte(len(s1))})
	hash.Write([]byte(s1))
	hash.Write([]byte(s2))
	hashBytes := hash.Sum(nil)
	return hex.EncodeToString(hashBytes)
}
