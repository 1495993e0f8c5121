package moderation

import (
	"errors"
	"strconv"
	"time"
)

// maxTimeout is the platform ceiling for a member timeout.
const maxTimeout = 28 * 24 * time.Hour

var (
	ErrDurationFormat  = errors.New("invalid duration format")
	ErrDurationUnit    = errors.New("invalid duration unit")
	ErrDurationTooLong = errors.New("duration exceeds 28 days")
)

// parseTimeoutDuration parses inputs like "30m", "1h" or "7d": an integer
// value followed by a single unit letter.
func parseTimeoutDuration(input string) (time.Duration, error) {
	if len(input) < 2 {
		return 0, ErrDurationFormat
	}

	value, err := strconv.ParseInt(input[:len(input)-1], 10, 64)
	if err != nil || value < 1 {
		return 0, ErrDurationFormat
	}

	suffix := input[len(input)-1]
	if suffix >= 'A' && suffix <= 'Z' {
		suffix += 'a' - 'A'
	}

	var unit time.Duration
	switch suffix {
	case 's':
		unit = time.Second
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	case 'd':
		unit = 24 * time.Hour
	default:
		return 0, ErrDurationUnit
	}

	// Compare before multiplying: the product can overflow int64 and wrap
	// under the ceiling.
	if value > int64(maxTimeout/unit) {
		return 0, ErrDurationTooLong
	}
	return time.Duration(value) * unit, nil
}
