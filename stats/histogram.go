package stats

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
)

const histogramBins = 15

// FprintHistogram draws a text histogram of values to w.
func FprintHistogram(w io.Writer, values []float64) error {
	if len(values) == 0 {
		_, err := fmt.Fprintln(w, "no data")
		return err
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo == hi {
		// A single bucket of zero width cannot be drawn.
		_, err := fmt.Fprintf(w, "all %d values are %g\n", len(values), lo)
		return err
	}
	hist := histogram.Hist(min(histogramBins, len(values)), values)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
