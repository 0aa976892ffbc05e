package compare_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"productcompare.org/web/internal/web/backend"
	"productcompare.org/web/internal/web/compare"
)

func TestAsDisplay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		feature *backend.ProductFeature
		want    string
	}{
		{"absent", nil, "-"},
		{"empty", &backend.ProductFeature{}, "-"},
		{"whitespace only", &backend.ProductFeature{Value: "  ", Price: " "}, "-"},
		{"value only", &backend.ProductFeature{Value: " 6.5 inch "}, "6.5 inch"},
		{"price only", &backend.ProductFeature{Price: " 499 "}, "price: 499"},
		{"value and price", &backend.ProductFeature{Value: "OLED", Price: "499"}, "OLED (price: 499)"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, compare.AsDisplay(tc.feature))
		})
	}
}

func TestParseNumeric(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"500", 500, true},
		{" 12.5 kg ", 12.5, true},
		{"₹1299", 1299, true},
		{"OLED (price: 499)", 499, true},
		{"v2 500 mAh", 2, true},
		{"1.2.3", 1.2, true},
		{"5.", 5, true},
		{".5", 0.5, true},
		{"..5", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := compare.ParseNumeric(tc.in)
		require.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			require.InDelta(t, tc.want, got, 0.0001, "input %q", tc.in)
		}
	}
}

func TestComparePair(t *testing.T) {
	t.Parallel()

	left, right := compare.ComparePair("500", "300")
	require.Equal(t, compare.VerdictBetter, left)
	require.Equal(t, compare.VerdictWorse, right)

	left, right = compare.ComparePair("300", "500 mAh")
	require.Equal(t, compare.VerdictWorse, left)
	require.Equal(t, compare.VerdictBetter, right)

	left, right = compare.ComparePair("300", "300")
	require.Equal(t, compare.VerdictNone, left)
	require.Equal(t, compare.VerdictNone, right)

	left, right = compare.ComparePair("abc", "300")
	require.Equal(t, compare.VerdictNone, left)
	require.Equal(t, compare.VerdictNone, right)

	left, right = compare.ComparePair("-", "-")
	require.Equal(t, compare.VerdictNone, left)
	require.Equal(t, compare.VerdictNone, right)
}
