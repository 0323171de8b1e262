package intent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPartialRatio(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"yes", "yes please", 100},
		{"yes please", "yes", 100},
		{"yeah", "yea", 100},
		{"yes", "yes", 100},
		{"abc", "xyz", 0},
		{"", "anything", 0},
		{"sounds good", "sounds god", 90},
		{"yes", "yas", 67},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, PartialRatio(tc.a, tc.b), "a=%q b=%q", tc.a, tc.b)
	}
}

func TestPartialRatio_Symmetric(t *testing.T) {
	require.Equal(t, PartialRatio("sure", "i am not sure"), PartialRatio("i am not sure", "sure"))
}

func TestPartialRatio_Runes(t *testing.T) {
	require.Equal(t, 100, PartialRatio("sí", "claro que sí"))
}
