package components

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/sparkline"

	"retrolog/internal/ui/theme"
)

// Sparkline renders values as a small bar chart. Gaps are drawn as zero so the
// bucket positions stay aligned with the labels.
func Sparkline(values []*float64, width, height int) string {
	if width < 4 {
		width = 4
	}
	if height < 1 {
		height = 1
	}
	if countPresent(values) == 0 {
		return theme.Muted.Render(fmt.Sprintf("%-*s", width, "no data"))
	}
	spark := sparkline.New(width, height)
	for _, v := range values {
		if v == nil {
			spark.Push(0)
			continue
		}
		spark.Push(*v)
	}
	spark.Draw()
	return theme.Spark.Render(spark.View())
}

func countPresent(values []*float64) int {
	n := 0
	for _, v := range values {
		if v != nil {
			n++
		}
	}
	return n
}
