// Package trend fits long-term linear trends to annual abundance series.
package trend

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mothtrap/mothtrap-go/internal/abundance"
)

// MinYears is the smallest number of usable annual values for which a
// regression is fitted. With fewer years only the scatter points are
// reported.
const MinYears = 6

// confidenceLevel is the two-sided coverage of the reported band.
const confidenceLevel = 0.95

// Point is one retained (year, annual mean) observation.
type Point struct {
	Year int
	Mean float64
}

// Fit is the result of an ordinary least squares fit of annual mean
// against year. When OK is false there were too few usable years; the
// scatter points are still populated for plotting.
type Fit struct {
	OK     bool
	Slope  float64
	Points []Point
	// Line, Lower and Upper are the fitted values and the 95% confidence
	// band for the mean prediction, aligned to Points. Nil when OK is
	// false.
	Line  []float64
	Lower []float64
	Upper []float64
}

// FitTrend filters the annual series to its defined values and fits an
// OLS line (with intercept) of mean against year. The series is indexed
// by year offset from startYear.
func FitTrend(startYear int, annual abundance.Series) Fit {
	var points []Point
	for i, v := range annual {
		if v.OK {
			points = append(points, Point{Year: startYear + i, Mean: v.V})
		}
	}

	fit := Fit{Points: points}
	n := len(points)
	if n < MinYears {
		return fit
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range points {
		xs[i] = float64(p.Year)
		ys[i] = p.Mean
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	fit.OK = true
	fit.Slope = beta

	// Residual standard error and the spread of the regressor, for the
	// standard error of the mean prediction at each retained year.
	xbar := stat.Mean(xs, nil)
	var sse, sxx float64
	for i := range xs {
		r := ys[i] - (alpha + beta*xs[i])
		sse += r * r
		dx := xs[i] - xbar
		sxx += dx * dx
	}
	s := math.Sqrt(sse / float64(n-2))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	tq := tDist.Quantile(0.5 + confidenceLevel/2)

	fit.Line = make([]float64, n)
	fit.Lower = make([]float64, n)
	fit.Upper = make([]float64, n)
	for i := range xs {
		yhat := alpha + beta*xs[i]
		dx := xs[i] - xbar
		se := s * math.Sqrt(1/float64(n)+dx*dx/sxx)
		fit.Line[i] = yhat
		fit.Lower[i] = yhat - tq*se
		fit.Upper[i] = yhat + tq*se
	}
	return fit
}

// CohortSeries sums the annual means of the member taxa year by year.
// A year where any member is undefined is undefined for the cohort:
// summing over a shrinking membership would fake a decline.
func CohortSeries(annual []abundance.Series, members []int) abundance.Series {
	if len(members) == 0 {
		return nil
	}
	years := len(annual[members[0]])
	sum := make(abundance.Series, years)
	for y := 0; y < years; y++ {
		total := 0.0
		complete := true
		for _, t := range members {
			v := annual[t][y]
			if !v.OK {
				complete = false
				break
			}
			total += v.V
		}
		if complete {
			sum[y] = abundance.Defined(total)
		}
	}
	return sum
}
