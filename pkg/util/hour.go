package util

import (
	"strconv"
	"time"
)

// UnixHour converts a time to whole hours since the Unix epoch.
func UnixHour(t time.Time) int64 {
	return t.UTC().Unix() / 3600
}

// CurrentUnixHour returns the unix hour for the current wall clock.
func CurrentUnixHour() int64 {
	return UnixHour(time.Now())
}

// HourStart returns the UTC instant at which the given unix hour begins.
func HourStart(hour int64) time.Time {
	return time.Unix(hour*3600, 0).UTC()
}

// UntilNextHour returns the duration from now until the next unix hour boundary.
func UntilNextHour(now time.Time) time.Duration {
	next := HourStart(UnixHour(now) + 1)
	return next.Sub(now)
}

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ParseInt64Default parses string to int64 or returns default if empty/invalid.
func ParseInt64Default(s string, def int64) int64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}
