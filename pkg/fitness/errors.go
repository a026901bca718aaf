package fitness

import (
	"math"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidInput is returned when an argument is out of range.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedActivity is returned for an activity without a MET value.
	ErrUnsupportedActivity = errors.New("unsupported activity")
)

func invalidf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// round returns f rounded to the number of decimal places, half away from zero.
func round(f float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(f*p) / p
}
