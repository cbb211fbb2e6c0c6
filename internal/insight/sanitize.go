package insight

import (
	"regexp"
	"strings"
)

var codeFence = regexp.MustCompile("```(?:json)?\n?")

// StripCodeFences removes every markdown code-fence marker from a raw
// completion and trims surrounding whitespace. The model wraps structured
// output in fences despite being told not to, so this runs on every
// response before validation.
//
// Total and idempotent: always returns a string, and a second pass is a
// no-op. Removal runs to a fixed point because deleting a marker can bring
// stray backticks together into a new one.
func StripCodeFences(s string) string {
	out := strings.TrimSpace(s)
	for {
		next := strings.TrimSpace(codeFence.ReplaceAllString(out, ""))
		if next == out {
			return out
		}
		out = next
	}
}
