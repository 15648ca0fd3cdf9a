package domain

import "testing"

func reversed(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[len(values)-1-i] = v
	}
	return out
}

func TestClassifyTrendIsSymmetric(t *testing.T) {
	t.Parallel()
	series := [][]float64{
		{1, 2, 3, 4},
		{1, 1.5, 2, 2.5, 3},
		{2, 2.2, 2.4, 2.6, 2.8, 3.0},
	}
	for _, values := range series {
		if got := ClassifyTrend(values); got != TrendUp {
			t.Fatalf("%v: expected up, got %s", values, got)
		}
		if got := ClassifyTrend(reversed(values)); got != TrendDown {
			t.Fatalf("%v reversed: expected down, got %s", values, got)
		}
	}
}

func TestClassifyTrendEdgeCases(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		values []float64
		want   Direction
	}{
		{name: "empty", values: nil, want: TrendStable},
		{name: "single", values: []float64{5}, want: TrendStable},
		{name: "within threshold", values: []float64{3, 3.3}, want: TrendStable},
		{name: "past threshold", values: []float64{3, 3.4}, want: TrendUp},
		{name: "odd drops middle", values: []float64{2, 5, 2}, want: TrendStable},
	}
	for _, tc := range cases {
		if got := ClassifyTrend(tc.values); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestClassifySeriesSkipsEmptyBuckets(t *testing.T) {
	t.Parallel()
	low, high := 1.0, 4.0
	points := []SeriesPoint{{Label: "a", Average: &low, Count: 1}, {Label: "b"}, {Label: "c"}, {Label: "d", Average: &high, Count: 2}}
	if got := ClassifySeries(points); got != TrendUp {
		t.Fatalf("expected up, got %s", got)
	}
	if got := ClassifySeries([]SeriesPoint{{Label: "a"}, {Label: "b", Average: &high}}); got != TrendStable {
		t.Fatalf("expected stable with a single value, got %s", got)
	}
}
