package binned_test

import (
	"fmt"

	"github.com/cwbudde/algo-hist/stats/binned"
)

func ExampleStatistic() {
	content := []float64{10, 20, 30}
	edges := []float64{0, 1, 2, 3}

	mean, _ := binned.Statistic(content, edges, binned.KindMean)
	variance, _ := binned.Statistic(content, edges, binned.KindStdDev)
	fmt.Printf("mean=%.3f stdev=%.3f\n", mean, variance)

	// Output:
	// mean=1.833 stdev=0.556
}
