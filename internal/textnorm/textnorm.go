// Package textnorm cleans raw editor text and computes the stable content
// fingerprint used for caching and change detection.
package textnorm

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Result is the output of Normalize.
type Result struct {
	// Clean is the analyzable text: markup stripped, whitespace collapsed,
	// NFC-normalized, trimmed.
	Clean string

	// Fingerprint is a deterministic non-cryptographic hash of Clean.
	// Equal Clean always yields an equal Fingerprint.
	Fingerprint string

	// TooShort is true when Clean is below the minimum analyzable length.
	// Callers short-circuit to an empty result without running engines.
	TooShort bool
}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	htmlEntityRe = regexp.MustCompile(`&[a-zA-Z#0-9]+;`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// entityReplacements maps the common named entities to their plain text form.
// Unrecognized entities are dropped entirely.
var entityReplacements = map[string]string{
	"&amp;":  "&",
	"&lt;":   "<",
	"&gt;":   ">",
	"&quot;": `"`,
	"&apos;": "'",
	"&nbsp;": " ",
}

// markdownMarkers are emphasis markers stripped before analysis so that
// offsets refer to the prose, not the formatting.
var markdownMarkers = []string{"**", "__", "*", "_", "`", "~~"}

// Normalize cleans raw text and fingerprints it. minRunes is the minimum
// Clean length (in runes) considered analyzable; pass 0 to accept anything.
func Normalize(raw string, minRunes int) Result {
	clean := htmlTagRe.ReplaceAllString(raw, " ")
	clean = htmlEntityRe.ReplaceAllStringFunc(clean, func(e string) string {
		if r, ok := entityReplacements[e]; ok {
			return r
		}
		return " "
	})
	for _, m := range markdownMarkers {
		clean = strings.ReplaceAll(clean, m, "")
	}
	clean = norm.NFC.String(clean)
	clean = whitespaceRe.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(clean)

	res := Result{Clean: clean, Fingerprint: Fingerprint(clean)}
	if utf8.RuneCountInString(clean) < minRunes {
		res.TooShort = true
	}
	return res
}

// Fingerprint computes the FNV-1a hash of text, hex-encoded with a length
// suffix to cut down collisions between short strings.
func Fingerprint(text string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return fmt.Sprintf("%016x-%d", h.Sum64(), len(text))
}

// Words splits clean text into lowercase word tokens. Used for the
// near-duplicate cache similarity probe and the classifier's word-overlap
// heuristic.
func Words(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Trim(f, ".,;:!?\"'()[]{}")
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}
