package matching

import (
	"github.com/agnivade/levenshtein"
)

// Similarity scores how well a appears inside b, from 0 (unrelated) to 100
// (exact substring).
type Similarity interface {
	Similarity(a, b string) float64
}

// PartialRatio aligns the shorter string against every window of the longer
// one and keeps the best indel-normalized ratio. Windows clipped by either
// edge of the longer string are scored too.
type PartialRatio struct{}

func (PartialRatio) Similarity(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) == 0 || len(long) == 0 {
		return 0
	}
	if len(short) > len(long) {
		short, long = long, short
	}

	best := alignedRatio(short, long)
	// Equal lengths give no natural needle; score both directions.
	if len(short) == len(long) && best < 100 {
		best = max(best, alignedRatio(long, short))
	}
	return best
}

func alignedRatio(short, long []rune) float64 {
	m := len(short)
	best := 0.0
	consider := func(window []rune) bool {
		r := indelRatio(short, window)
		if r > best {
			best = r
		}
		return best >= 100
	}

	for i := 1; i < m; i++ {
		if consider(long[:i]) {
			return 100
		}
	}
	for i := 0; i+m <= len(long); i++ {
		if consider(long[i : i+m]) {
			return 100
		}
	}
	for i := len(long) - m + 1; i < len(long); i++ {
		if consider(long[i:]) {
			return 100
		}
	}
	return best
}

func indelRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return 200 * float64(lcsLength(a, b)) / float64(total)
}

func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for _, x := range a {
		for j, y := range b {
			switch {
			case x == y:
				cur[j+1] = prev[j] + 1
			case prev[j+1] >= cur[j]:
				cur[j+1] = prev[j+1]
			default:
				cur[j+1] = cur[j]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// LevenshteinPartial slides the shorter string over same-length windows of
// the longer one and scores 100*(1 - edits/len).
type LevenshteinPartial struct{}

func (LevenshteinPartial) Similarity(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) == 0 || len(long) == 0 {
		return 0
	}
	if len(short) > len(long) {
		short, long = long, short
	}

	m := len(short)
	needle := string(short)
	best := 0.0
	for i := 0; i+m <= len(long); i++ {
		d := levenshtein.ComputeDistance(needle, string(long[i:i+m]))
		r := 100 * (1 - float64(d)/float64(m))
		if r > best {
			best = r
			if best >= 100 {
				return 100
			}
		}
	}
	return best
}
