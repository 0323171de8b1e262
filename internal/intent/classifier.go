// Package intent classifies noisy spoken responses against small keyword
// vocabularies using approximate partial matching.
package intent

import (
	"strings"

	"golang.org/x/text/cases"
)

// DefaultThreshold is the partial-ratio score a keyword must exceed.
const DefaultThreshold = 80

// DefaultAffirmatives is the vocabulary treated as agreement.
var DefaultAffirmatives = []string{
	"yes",
	"yeah",
	"yep",
	"sure",
	"okay",
	"absolutely",
	"definitely",
	"of course",
	"sounds good",
	"i would like",
}

// Undecided is the vocabulary for callers without a destination in mind.
var Undecided = []string{
	"not sure",
	"don't know",
	"no idea",
	"anywhere",
	"undecided",
}

// Config holds classifier settings. Zero values fall back to defaults.
type Config struct {
	Threshold    int      // Score (0-100) a keyword must exceed (default 80).
	Affirmatives []string // Agreement vocabulary (default DefaultAffirmatives).
}

// Classifier maps an utterance to affirmative or not.
type Classifier struct {
	threshold    int
	affirmatives []string
}

// NewClassifier creates a classifier with the given config, applying defaults.
func NewClassifier(cfg Config) *Classifier {
	if cfg.Threshold <= 0 || cfg.Threshold > 100 {
		cfg.Threshold = DefaultThreshold
	}
	if len(cfg.Affirmatives) == 0 {
		cfg.Affirmatives = DefaultAffirmatives
	}
	vocab := make([]string, 0, len(cfg.Affirmatives))
	for _, k := range cfg.Affirmatives {
		if k = normalize(k); k != "" {
			vocab = append(vocab, k)
		}
	}
	return &Classifier{threshold: cfg.Threshold, affirmatives: vocab}
}

// Threshold returns the configured match threshold.
func (c *Classifier) Threshold() int {
	return c.threshold
}

// IsAffirmative reports whether the response agrees. Empty input is never
// affirmative. Negations are not detected: "no, not sure" still matches "sure".
func (c *Classifier) IsAffirmative(response string) bool {
	return c.Matches(response, c.affirmatives)
}

// Matches reports whether any keyword in vocabulary partially matches the
// response with a score above the threshold.
func (c *Classifier) Matches(response string, vocabulary []string) bool {
	text := normalize(response)
	if text == "" {
		return false
	}
	for _, keyword := range vocabulary {
		keyword = normalize(keyword)
		if keyword == "" {
			continue
		}
		if PartialRatio(keyword, text) > c.threshold {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}
