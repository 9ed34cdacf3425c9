package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-planner/internal/clock"
)

func TestParseAbsolute(t *testing.T) {
	cases := map[string]int{
		"12:00 AM": 0,
		"12:30 AM": 30,
		"1:05 AM":  65,
		"9:00 AM":  540,
		"09:00 AM": 540,
		"12:00 PM": 720,
		"1:00 PM":  780,
		"11:59 PM": 1439,
	}
	for in, want := range cases {
		c, err := clock.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, clock.Absolute, c.Kind, in)
		assert.Equal(t, want, c.Minutes, in)
	}
}

func TestParseRelative(t *testing.T) {
	c, err := clock.Parse("T:30")
	require.NoError(t, err)
	assert.Equal(t, clock.Relative, c.Kind)
	assert.Equal(t, 30, c.Minutes)

	c, err = clock.Parse("T:0")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Minutes)
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{"", "9:00", "25:00 AM", "9:60 AM", "0:30 PM", "9:5 AM", "T:-5", "T:abc", "noon"} {
		_, err := clock.Parse(in)
		assert.ErrorIs(t, err, clock.ErrMalformedTime, in)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for m := 0; m < 1440; m++ {
		s := clock.Format(m)
		c, err := clock.Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, m, c.Minutes, s)
		assert.Equal(t, s, clock.Format(c.Minutes))
	}
}

func TestFormatWrapsPastMidnight(t *testing.T) {
	assert.Equal(t, "12:30 AM", clock.Format(1470))
	assert.Equal(t, "11:00 PM", clock.Format(-60))
}

func TestDuration(t *testing.T) {
	d := func(start, end string) int {
		s, err := clock.Parse(start)
		require.NoError(t, err)
		e, err := clock.Parse(end)
		require.NoError(t, err)
		return clock.Duration(s, e)
	}

	assert.Equal(t, 60, d("9:00 AM", "10:00 AM"))
	assert.Equal(t, 60, d("11:30 PM", "12:30 AM"), "interval crossing midnight")
	assert.Equal(t, 0, d("9:00 AM", "9:00 AM"))
	assert.Equal(t, 30, d("T:0", "T:30"))
	assert.Equal(t, -10, d("T:40", "T:30"), "relative spans do not wrap")
}

func TestCompareTreatsRelativeAsAbsolute(t *testing.T) {
	rel, err := clock.Parse("T:30")
	require.NoError(t, err)
	abs, err := clock.Parse("9:00 AM")
	require.NoError(t, err)

	assert.Negative(t, clock.Compare(rel, abs))
	assert.Positive(t, clock.Compare(abs, rel))
	assert.Zero(t, clock.Compare(rel, rel))
}

func TestString(t *testing.T) {
	c, err := clock.Parse("T:45")
	require.NoError(t, err)
	assert.Equal(t, "T:45", c.String())

	c, err = clock.Parse("09:05 PM")
	require.NoError(t, err)
	assert.Equal(t, "9:05 PM", c.String())
}
