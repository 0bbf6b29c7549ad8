package ids

import (
	"crypto/sha256"
	"encoding/base32"
	"time"

	internalstrings "github.com/livslogg/livslogg/internal/strings"
)

// DefaultLength is how many characters of the encoded digest task IDs
// keep. Eight base32 characters keep collisions implausible for a
// personal task file while staying short enough to type.
const DefaultLength = 8

// Generate derives a stable ID from input: a sha256 digest, base32
// encoded and lowercased so IDs survive case-insensitive matching. The
// same input always yields the same ID. A non-positive length yields
// the empty string; a length past the encoded digest yields the whole
// digest.
func Generate(input string, length int) string {
	if length <= 0 {
		return ""
	}
	digest := sha256.Sum256([]byte(input))
	encoded := internalstrings.NormalizeLower(base32.StdEncoding.EncodeToString(digest[:]))
	if length >= len(encoded) {
		return encoded
	}
	return encoded[:length]
}

// GenerateWithTimestamp mixes a timestamp into the hashed input so
// repeated occurrences of the same title, such as a recurring task's
// successors, get distinct IDs.
func GenerateWithTimestamp(input string, timestamp time.Time, length int) string {
	return Generate(input+timestamp.Format(time.RFC3339Nano), length)
}
