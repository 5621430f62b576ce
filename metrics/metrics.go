// Package metrics computes return and risk statistics over a daily series of
// portfolio values. Every function is a pure, stateless transform on float64
// slices: a series too short to carry a defined statistic yields NaN, never a
// panic, and never an error to thread through reporting code.
package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// BusinessDaysPerYear is the trading-day count used for annualization.
	BusinessDaysPerYear = 252
	// DaysPerYear is the calendar-day count used for CAGR.
	DaysPerYear = 365
)

var sqrt252 = math.Sqrt(BusinessDaysPerYear)

// Returns computes the daily percent change of a value series. The first
// point has no defined return and is dropped; a zero value makes the next
// change undefined and it is dropped as well.
func Returns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		returns = append(returns, (values[i]-values[i-1])/values[i-1])
	}
	return returns
}

// TotalReturn is the cumulative compound return over the whole series.
func TotalReturn(returns []float64) float64 {
	if len(returns) == 0 {
		return math.NaN()
	}
	cumulative := 1.0
	for _, r := range returns {
		cumulative *= 1 + r
	}
	return cumulative - 1
}

// CAGR annualizes the total return over the elapsed calendar days.
func CAGR(returns []float64, daysElapsed int) float64 {
	if len(returns) == 0 || daysElapsed <= 0 {
		return math.NaN()
	}
	years := float64(daysElapsed) / DaysPerYear
	return math.Pow(1+TotalReturn(returns), 1/years) - 1
}

// excess subtracts the daily risk-free rate from each return.
func excess(returns []float64, riskFree float64) []float64 {
	daily := riskFree / BusinessDaysPerYear
	out := make([]float64, len(returns))
	for i, r := range returns {
		out[i] = r - daily
	}
	return out
}

// SharpeRatio is the annualized mean over standard deviation of daily excess
// returns. riskFree is an annualized rate.
func SharpeRatio(returns []float64, riskFree float64) float64 {
	if len(returns) < 2 {
		return math.NaN()
	}
	ex := excess(returns, riskFree)
	sd := stat.StdDev(ex, nil)
	if sd == 0 {
		return math.NaN()
	}
	return stat.Mean(ex, nil) / sd * sqrt252
}

// SortinoRatio is the Sharpe ratio with the deviation taken over negative
// excess returns only.
func SortinoRatio(returns []float64, riskFree float64) float64 {
	if len(returns) < 2 {
		return math.NaN()
	}
	ex := excess(returns, riskFree)
	var downside []float64
	for _, r := range ex {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	if len(downside) < 2 {
		return math.NaN()
	}
	sd := stat.StdDev(downside, nil)
	if sd == 0 {
		return math.NaN()
	}
	return stat.Mean(ex, nil) / sd * sqrt252
}

// MaxDrawdown is the deepest peak-to-trough decline of the compounded series,
// as a negative fraction.
func MaxDrawdown(returns []float64) float64 {
	if len(returns) == 0 {
		return math.NaN()
	}
	cumulative, peak, worst := 1.0, 1.0, 0.0
	for _, r := range returns {
		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		if dd := cumulative/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}

// RealizedVolatility is the standard deviation of the returns, annualized by
// √252 when requested.
func RealizedVolatility(returns []float64, annualize bool) float64 {
	if len(returns) < 2 {
		return math.NaN()
	}
	sd := stat.StdDev(returns, nil)
	if annualize {
		return sd * sqrt252
	}
	return sd
}

// quantile returns the empirical alpha-quantile of the sample.
func quantile(returns []float64, alpha float64) float64 {
	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)
	return stat.Quantile(alpha, stat.Empirical, sorted, nil)
}

// ParametricVaR is the Gaussian value-at-risk at confidence alpha (0.05 for
// 95%), with losses reported as positive numbers.
func ParametricVaR(returns []float64, alpha float64) float64 {
	if len(returns) < 2 {
		return math.NaN()
	}
	mu := stat.Mean(returns, nil)
	sigma := stat.StdDev(returns, nil)
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(alpha)
	return -(mu + z*sigma)
}

// HistoricalVaR is the empirical value-at-risk at confidence alpha, with
// losses reported as positive numbers.
func HistoricalVaR(returns []float64, alpha float64) float64 {
	if len(returns) < 2 {
		return math.NaN()
	}
	return -quantile(returns, alpha)
}

// ConditionalVaR (expected shortfall) is the average loss in the worst
// alpha tail of the distribution.
func ConditionalVaR(returns []float64, alpha float64) float64 {
	if len(returns) < 2 {
		return math.NaN()
	}
	level := quantile(returns, alpha)
	var tail []float64
	for _, r := range returns {
		if r <= level {
			tail = append(tail, r)
		}
	}
	if len(tail) == 0 {
		return math.NaN()
	}
	return -stat.Mean(tail, nil)
}

// Beta is the slope of the least-squares regression of portfolio returns on
// benchmark returns. Both slices must already be date-aligned and of equal
// length.
func Beta(portfolio, benchmark []float64) float64 {
	if len(portfolio) < 2 || len(portfolio) != len(benchmark) {
		return math.NaN()
	}
	_, beta := stat.LinearRegression(benchmark, portfolio, nil, false)
	return beta
}

// active returns the element-wise difference portfolio - benchmark, or nil
// when the slices cannot be compared.
func active(portfolio, benchmark []float64) []float64 {
	if len(portfolio) < 2 || len(portfolio) != len(benchmark) {
		return nil
	}
	out := make([]float64, len(portfolio))
	for i := range portfolio {
		out[i] = portfolio[i] - benchmark[i]
	}
	return out
}

// TrackingError is the annualized standard deviation of active returns.
func TrackingError(portfolio, benchmark []float64) float64 {
	act := active(portfolio, benchmark)
	if act == nil {
		return math.NaN()
	}
	return stat.StdDev(act, nil) * sqrt252
}

// InformationRatio is the annualized mean active return over the tracking
// error.
func InformationRatio(portfolio, benchmark []float64) float64 {
	act := active(portfolio, benchmark)
	if act == nil {
		return math.NaN()
	}
	sd := stat.StdDev(act, nil)
	if sd == 0 {
		return math.NaN()
	}
	return stat.Mean(act, nil) / sd * sqrt252
}

// RollingSharpe computes the Sharpe ratio over a sliding window. The result
// has one entry per input return; entries before the window fills are NaN.
func RollingSharpe(returns []float64, riskFree float64, window int) []float64 {
	out := make([]float64, len(returns))
	for i := range out {
		if i+1 < window {
			out[i] = math.NaN()
			continue
		}
		out[i] = SharpeRatio(returns[i+1-window:i+1], riskFree)
	}
	return out
}

// RollingInformationRatio computes the information ratio over a sliding
// window of date-aligned return pairs.
func RollingInformationRatio(portfolio, benchmark []float64, window int) []float64 {
	if len(portfolio) != len(benchmark) {
		return nil
	}
	out := make([]float64, len(portfolio))
	for i := range out {
		if i+1 < window {
			out[i] = math.NaN()
			continue
		}
		out[i] = InformationRatio(portfolio[i+1-window:i+1], benchmark[i+1-window:i+1])
	}
	return out
}
