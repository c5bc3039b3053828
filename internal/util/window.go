package util

import (
	"math"

	"github.com/asecurityteam/rolling"
)

func CreateRollingWindow(size int) *rolling.PointPolicy {
	return rolling.NewPointPolicy(rolling.NewWindow(size))
}

// GetWindowMax returns the max value in the window
func GetWindowMax(window *rolling.PointPolicy) float64 {
	return window.Reduce(func(w rolling.Window) float64 {
		var result = math.Inf(-1)
		for _, bucket := range w {
			for _, p := range bucket {
				result = math.Max(result, p)
			}
		}
		return result
	})
}

// GetWindowAvg returns the average of all values in the window
func GetWindowAvg(window *rolling.PointPolicy) float64 {
	return window.Reduce(rolling.Avg)
}
