package trinity

import (
	"strings"
	"time"
	"unicode"
)

// nameMatchThreshold: normalized edit-distance ratio at or above this counts
// as the same person. OCR noise on MyKad names sits well above it.
const nameMatchThreshold = 0.85

// cleanNRIC strips separators; NRIC comparison is exact on digits only.
func cleanNRIC(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// cleanPlate uppercases and strips everything that is not a letter or digit.
func cleanPlate(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// foldName case-folds and strips non-alphanumerics before fuzzy comparison.
func foldName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// nameSimilarity returns 1 - levenshtein(a,b)/max(len) over folded names.
func nameSimilarity(a, b string) float64 {
	fa, fb := foldName(a), foldName(b)
	if fa == "" || fb == "" {
		return 0
	}
	if fa == fb {
		return 1
	}
	dist := levenshtein(fa, fb)
	max := len(fa)
	if len(fb) > max {
		max = len(fb)
	}
	return 1 - float64(dist)/float64(max)
}

// namesMatch applies the fuzzy threshold.
func namesMatch(a, b string) bool {
	return nameSimilarity(a, b) >= nameMatchThreshold
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// dateLayouts the extractors emit, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02-01-2006",
}

// parseDate is lenient about format; unparseable dates count as unknown.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// sameDay compares calendar dates ignoring time of day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
