package plot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Fit is a first-degree least squares fit y = Slope*x + Intercept.
type Fit struct {
	Slope     float64
	Intercept float64
}

// LinearFit fits a line through (xs, ys). It reports false when fewer than two
// points are given or the fit is degenerate (every x equal).
func LinearFit(xs, ys []float64) (Fit, bool) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return Fit{}, false
	}
	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if !isFinite(slope) || !isFinite(intercept) {
		return Fit{}, false
	}
	return Fit{Slope: slope, Intercept: intercept}, true
}

// At evaluates the fitted line at x.
func (f Fit) At(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// Label is the legend text for the trend overlay, rounded to 2 decimals.
func (f Fit) Label() string {
	return fmt.Sprintf("Trend: Y = %.2fX + %.2f", f.Slope, f.Intercept)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
