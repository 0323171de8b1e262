package intent

import (
	"math"

	"github.com/agnivade/levenshtein"
)

// PartialRatio scores how well the shorter string matches its best aligned
// window in the longer one, on a 0-100 scale. An exact substring scores 100.
// Inputs are compared as-is; callers normalize case.
func PartialRatio(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	s := string(short)
	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		score := ratio(s, string(long[i:i+len(short)]), len(short))
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

func ratio(a, b string, n int) int {
	d := levenshtein.ComputeDistance(a, b)
	if d >= n {
		return 0
	}
	return int(math.Round(100 * float64(n-d) / float64(n)))
}
