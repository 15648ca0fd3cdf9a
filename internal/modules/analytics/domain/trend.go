package domain

type Direction string

const (
	TrendUp     Direction = "up"
	TrendDown   Direction = "down"
	TrendStable Direction = "stable"
)

// ClassifyTrend compares the mean of the later half of values with the
// earlier half. The middle value of an odd-length series is left out.
func ClassifyTrend(values []float64) Direction {
	n := len(values)
	if n < 2 {
		return TrendStable
	}
	half := n / 2
	earlier, _ := Mean(values[:half])
	later, _ := Mean(values[n-half:])
	switch delta := later - earlier; {
	case delta > TrendDelta:
		return TrendUp
	case delta < -TrendDelta:
		return TrendDown
	default:
		return TrendStable
	}
}

// ClassifySeries classifies the non-empty points of a series in order.
func ClassifySeries(points []SeriesPoint) Direction {
	values := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Average != nil {
			values = append(values, *p.Average)
		}
	}
	return ClassifyTrend(values)
}

type TrendSet struct {
	Emotion      Direction `json:"emotion"`
	Impact       Direction `json:"impact"`
	Productivity Direction `json:"productivity"`
}
