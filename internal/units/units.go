package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Binary (1024-based) unit multipliers
const (
	KB = int64(1) << 10
	MB = int64(1) << 20
	GB = int64(1) << 30
	TB = int64(1) << 40
)

var ErrMalformedSize = errors.New("malformed size string")

// Format renders a byte count in the largest binary unit where the scaled
// value is at least 1, with up to two decimal digits (trailing zeros
// trimmed). The bytes tier keeps its historical trailing period: callers
// round-tripping through Parse rely on both spellings being accepted.
func Format(bytes int64) string {
	v := float64(bytes)
	switch {
	case v >= float64(TB):
		return trim(v/float64(TB)) + " TB"
	case v >= float64(GB):
		return trim(v/float64(GB)) + " GB"
	case v >= float64(MB):
		return trim(v/float64(MB)) + " MB"
	case v >= float64(KB):
		return trim(v/float64(KB)) + " KB"
	default:
		return trim(v) + " bytes."
	}
}

// trim rounds to two decimals and drops trailing zeros, so 1.5 stays "1.5"
// and 0 stays "0" rather than "1.50" / "0.00". Exact half values round
// away from zero, not to even.
func trim(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// Parse converts a string produced by Format (or hand-written in the same
// shape) back into a byte count. The numeric part is multiplied by the unit
// suffix; unknown suffixes, including the "bytes." tier, multiply by one.
// Input without a space separator is rejected.
func Parse(s string) (int64, error) {
	fields := strings.SplitN(s, " ", 2)
	if len(fields) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSize, s)
	}

	n, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedSize, s, err)
	}

	switch fields[1] {
	case "TB":
		n *= float64(TB)
	case "GB":
		n *= float64(GB)
	case "MB":
		n *= float64(MB)
	case "KB":
		n *= float64(KB)
	default:
		// "bytes." and anything unrecognized: already in bytes
	}
	return int64(math.Round(n)), nil
}
