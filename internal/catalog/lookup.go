package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"travel-intake-agent/internal/domain"
)

// Lookup finds the deal whose destination is mentioned in the utterance.
// A destination matches when its characters occur in order within a span at
// most one character longer than the destination itself.
func (c *Catalog) Lookup(utterance string) (domain.Deal, bool) {
	candidates := wordSuffixes(strings.ToLower(utterance))
	if len(candidates) == 0 {
		return domain.Deal{}, false
	}

	best, bestScore, found := domain.Deal{}, math.MinInt, false
	for _, d := range c.deals {
		pattern := strings.ToLower(d.Destination)
		for _, m := range fuzzy.Find(pattern, candidates) {
			if !tight(m.MatchedIndexes, len(pattern)) {
				continue
			}
			if m.Score > bestScore {
				best, bestScore, found = d, m.Score, true
			}
		}
	}
	return best, found
}

// wordSuffixes returns the utterance suffixes starting at each word so the
// leftmost-greedy matcher can anchor on any word.
func wordSuffixes(s string) []string {
	words := strings.Fields(s)
	out := make([]string, 0, len(words))
	for i := range words {
		out = append(out, strings.Join(words[i:], " "))
	}
	return out
}

func tight(idx []int, n int) bool {
	if len(idx) == 0 {
		return false
	}
	return idx[len(idx)-1]-idx[0]+1 <= n+1
}

// MaxBudget caps a parsed budget so absurd spoken amounts stay positive.
const MaxBudget = math.MaxInt32

var budgetPattern = regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?)\s*(k\b|thousand)?`)

// ParseBudget extracts the first numeric amount from a spoken budget.
// "$2,500" yields 2500 and "3k" yields 3000. Amounts above MaxBudget are
// clamped to it.
func ParseBudget(utterance string) (int, bool) {
	m := budgetPattern.FindStringSubmatch(utterance)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if m[2] != "" {
		v *= 1000
	}
	if v <= 0 {
		return 0, false
	}
	if v > MaxBudget {
		return MaxBudget, true
	}
	return int(math.Round(v)), true
}

var printer = message.NewPrinter(language.English)

// FormatPrice renders a whole-dollar amount for speech, e.g. "$1,200".
func FormatPrice(amount int) string {
	return printer.Sprintf("$%d", amount)
}

// Describe renders a deal as one spoken sentence fragment.
func Describe(d domain.Deal) string {
	var b strings.Builder
	b.WriteString("the ")
	b.WriteString(d.Name)
	if d.Tier != "" {
		b.WriteString(", our ")
		b.WriteString(d.Tier)
		b.WriteString(" package")
	}
	b.WriteString(" to ")
	b.WriteString(d.Destination)
	b.WriteString(" for ")
	b.WriteString(FormatPrice(d.Price))
	b.WriteString(" per person")
	if d.Inclusions != "" {
		b.WriteString(", including ")
		b.WriteString(d.Inclusions)
	}
	return b.String()
}
