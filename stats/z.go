package stats

import "gonum.org/v1/gonum/stat/distuv"

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}

// WinProbability returns the probability that a normally distributed
// quantity with the given mean and standard error is above zero.
func WinProbability(mean, stderr float64) float64 {
	if stderr == 0 {
		switch {
		case mean > 0:
			return 1
		case mean < 0:
			return 0
		}
		return 0.5
	}
	dist := distuv.Normal{Mu: mean, Sigma: stderr}
	return dist.Survival(0)
}
