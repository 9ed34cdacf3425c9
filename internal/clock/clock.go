// Package clock handles the two clock-time encodings used by tasks: the
// 12-hour "H:MM AM|PM" form and the "T:<minutes>" sentinel for untimed
// tasks that only carry an allotted duration.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedTime reports a clock string in neither supported encoding.
var ErrMalformedTime = errors.New("malformed time")

// Kind discriminates the two encodings.
type Kind int

const (
	// Absolute is a wall-clock time, minutes since midnight.
	Absolute Kind = iota
	// Relative is an untimed allotment of minutes ("T:<n>").
	Relative
)

// Clock is a parsed clock value.
type Clock struct {
	Kind    Kind
	Minutes int
}

// Parse decodes "H:MM AM|PM" (leading zero on the hour accepted) or
// "T:<minutes>".
func Parse(value string) (Clock, error) {
	value = strings.TrimSpace(value)

	if rest, ok := strings.CutPrefix(value, "T:"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return Clock{}, fmt.Errorf("%w: %q", ErrMalformedTime, value)
		}
		return Clock{Kind: Relative, Minutes: n}, nil
	}

	timePart, period, ok := strings.Cut(value, " ")
	if !ok {
		return Clock{}, fmt.Errorf("%w: %q", ErrMalformedTime, value)
	}
	hourPart, minutePart, ok := strings.Cut(timePart, ":")
	if !ok {
		return Clock{}, fmt.Errorf("%w: %q", ErrMalformedTime, value)
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 1 || hour > 12 {
		return Clock{}, fmt.Errorf("%w: %q", ErrMalformedTime, value)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || len(minutePart) != 2 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("%w: %q", ErrMalformedTime, value)
	}

	switch strings.ToUpper(period) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	default:
		return Clock{}, fmt.Errorf("%w: %q", ErrMalformedTime, value)
	}

	return Clock{Kind: Absolute, Minutes: hour*60 + minute}, nil
}

// Format renders minutes since midnight as "H:MM AM|PM". Values outside
// [0,1440) wrap around the day, so a cursor that ran past midnight still
// formats as a valid morning time.
func Format(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	hour := minutes / 60
	minute := minutes % 60

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour12, minute, period)
}

// String renders the clock back in its own encoding.
func (c Clock) String() string {
	if c.Kind == Relative {
		return "T:" + strconv.Itoa(c.Minutes)
	}
	return Format(c.Minutes)
}

// Duration returns end - start in minutes. When both ends are absolute and
// the difference is negative the interval crosses midnight and a full day is
// added; downstream scheduling relies on the result being non-negative.
func Duration(start, end Clock) int {
	d := end.Minutes - start.Minutes
	if d < 0 && start.Kind == Absolute && end.Kind == Absolute {
		d += 1440
	}
	return d
}

// Compare orders two clocks by their encoded minute value. Relative values
// compare as if absolute; agenda ordering has always treated them that way.
func Compare(a, b Clock) int {
	return a.Minutes - b.Minutes
}
