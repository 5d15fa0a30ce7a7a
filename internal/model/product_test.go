package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{12950, "129.50"},
		{-12950, "-129.50"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, FormatPrice(tc.minor))
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"129", 12900},
		{"129.5", 12950},
		{"129.50", 12950},
		{"0.05", 5},
		{"-129.50", -12950},
	}

	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		require.NoError(t, err, "parsing %q", tc.in)
		require.Equal(t, tc.want, got, "parsing %q", tc.in)
	}
}

func TestParsePriceRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.234", ".50", "1.x"} {
		_, err := ParsePrice(in)
		require.Error(t, err, "input %q", in)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	got, err := ParsePrice(FormatPrice(12950))
	require.NoError(t, err)
	require.Equal(t, int64(12950), got)
}
