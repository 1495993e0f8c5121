package moderation

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeoutDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		err   error
	}{
		{input: "30s", want: 30 * time.Second},
		{input: "30m", want: 30 * time.Minute},
		{input: "1h", want: time.Hour},
		{input: "7d", want: 7 * 24 * time.Hour},
		{input: "28d", want: 28 * 24 * time.Hour},
		{input: "2H", want: 2 * time.Hour}, // unit is case-insensitive
		{input: "29d", err: ErrDurationTooLong},
		{input: "673h", err: ErrDurationTooLong},
		// Values whose nanosecond product wraps int64 must still hit the
		// ceiling, not slip under it.
		{input: "202163959358895d", err: ErrDurationTooLong},
		{input: "9223372036854776s", err: ErrDurationTooLong},
		{input: "10x", err: ErrDurationUnit},
		{input: "10", err: ErrDurationUnit}, // "1" + unit "0"
		{input: "abc", err: ErrDurationFormat},
		{input: "m", err: ErrDurationFormat},
		{input: "", err: ErrDurationFormat},
		{input: "-5m", err: ErrDurationFormat},
		{input: "0h", err: ErrDurationFormat},
		{input: "1.5h", err: ErrDurationFormat},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parseTimeoutDuration(tc.input)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
