package intent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClassifier_Defaults(t *testing.T) {
	c := NewClassifier(Config{})
	require.Equal(t, DefaultThreshold, c.Threshold())
	require.Len(t, c.affirmatives, len(DefaultAffirmatives))

	c = NewClassifier(Config{Threshold: 150})
	require.Equal(t, DefaultThreshold, c.Threshold())
}

func TestIsAffirmative_ContainsKeyword(t *testing.T) {
	c := NewClassifier(Config{})
	for _, k := range DefaultAffirmatives {
		require.True(t, c.IsAffirmative("well "+k+" I guess"), "keyword=%q", k)
		require.True(t, c.IsAffirmative(k), "keyword=%q", k)
	}
}

func TestIsAffirmative_CaseInsensitive(t *testing.T) {
	c := NewClassifier(Config{})
	require.True(t, c.IsAffirmative("YES"))
	require.True(t, c.IsAffirmative("Of Course!"))
}

func TestIsAffirmative_EmptyIsNegative(t *testing.T) {
	c := NewClassifier(Config{})
	require.False(t, c.IsAffirmative(""))
	require.False(t, c.IsAffirmative("   \t"))
}

func TestIsAffirmative_Negatives(t *testing.T) {
	c := NewClassifier(Config{})
	for _, r := range []string{"no", "nope", "Bali", "maybe later", "I'm busy"} {
		require.False(t, c.IsAffirmative(r), "response=%q", r)
	}
}

func TestIsAffirmative_ToleratesTranscriptionNoise(t *testing.T) {
	c := NewClassifier(Config{})
	require.True(t, c.IsAffirmative("that sounds god"))
	require.True(t, c.IsAffirmative("yess"))
}

func TestIsAffirmative_ThresholdIsOverridable(t *testing.T) {
	c := NewClassifier(Config{Threshold: 95})
	require.False(t, c.IsAffirmative("that sounds god"))
	require.True(t, c.IsAffirmative("sounds good"))
}

func TestIsAffirmative_NegatedAffirmativeStillMatches(t *testing.T) {
	c := NewClassifier(Config{})
	require.True(t, c.IsAffirmative("no, not sure"))
}

func TestIsAffirmative_CustomVocabulary(t *testing.T) {
	c := NewClassifier(Config{Affirmatives: []string{"  Si  ", ""}})
	require.True(t, c.IsAffirmative("si senor"))
	require.False(t, c.IsAffirmative("yes"))
}

func TestMatches_Undecided(t *testing.T) {
	c := NewClassifier(Config{})
	require.True(t, c.Matches("I'm not sure yet", Undecided))
	require.True(t, c.Matches("I don't know", Undecided))
	require.False(t, c.Matches("Bali", Undecided))
	require.False(t, c.Matches("Norway", Undecided))
	require.False(t, c.Matches("", Undecided))
}
