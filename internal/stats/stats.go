// Package stats implements the numeric primitives shared by the wellness
// analytics engine and the goal optimizer: descriptive statistics, Pearson
// correlation with a t-distribution significance test, and ordinary
// least-squares regression.
//
// Every function is total. Insufficient or degenerate input yields a defined
// neutral value (0, or p=1) rather than an error, because small datasets are
// the normal state for a new user, not a failure.
package stats

import "math"

// MinSamplesForCorrelation is the smallest series length for which a Pearson
// coefficient is computed at all.
const MinSamplesForCorrelation = 3

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Variance returns the population variance of xs, or 0 for fewer than two
// values.
func Variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := Mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return ss / float64(len(xs))
}

// StdDev returns the population standard deviation of xs.
func StdDev(xs []float64) float64 {
	return math.Sqrt(Variance(xs))
}

// PearsonCorrelation computes the product-moment correlation between x and y.
// Series shorter than MinSamplesForCorrelation, mismatched lengths, or a
// zero-variance series all return 0.
func PearsonCorrelation(x, y []float64) float64 {
	n := len(x)
	if n != len(y) || n < MinSamplesForCorrelation {
		return 0
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var numerator, denomX, denomY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		numerator += dx * dy
		denomX += dx * dx
		denomY += dy * dy
	}

	if denomX == 0 || denomY == 0 {
		return 0
	}

	return numerator / math.Sqrt(denomX*denomY)
}

// RegressionResult holds an ordinary least-squares fit.
type RegressionResult struct {
	Slope     float64
	Intercept float64
	RSquared  float64
}

// LinearRegression fits y = slope*x + intercept by ordinary least squares.
// Degenerate input (mismatched or short series, constant x) returns the zero
// result; constant y returns RSquared = 0 by convention rather than NaN.
func LinearRegression(x, y []float64) RegressionResult {
	n := len(x)
	if n != len(y) || n < 2 {
		return RegressionResult{}
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var sxx, sxy float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		sxx += dx * dx
		sxy += dx * (y[i] - meanY)
	}

	if sxx == 0 {
		return RegressionResult{}
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		predicted := slope*x[i] + intercept
		dRes := y[i] - predicted
		dTot := y[i] - meanY
		ssRes += dRes * dRes
		ssTot += dTot * dTot
	}

	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	return RegressionResult{Slope: slope, Intercept: intercept, RSquared: r2}
}
