package auth

import (
	"strconv"
	"strings"
	"time"
)

// ParseExpiry parses a token lifetime expression. It accepts everything
// time.ParseDuration does plus a "d" day suffix, so the conventional "15m"
// and "7d" configuration values both work.
func ParseExpiry(pattern string) (time.Duration, error) {
	pattern = strings.TrimSpace(pattern)
	if strings.HasSuffix(pattern, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(pattern, "d"))
		if err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(pattern)
}

// IsWithinThresholdPeriod checks if the given time is within the threshold
func IsWithinThresholdPeriod(t time.Time, pattern string) (bool, error) {
	duration, err := ParseExpiry(pattern)
	if err != nil {
		return false, err
	}

	threshold := time.Now().Add(-duration)
	if t.After(threshold) {
		return true, nil
	}

	return false, nil
}

// IsOutsideThresholdPeriod is the negation of IsWithinThresholdPeriod
func IsOutsideThresholdPeriod(t time.Time, pattern string) (bool, error) {
	valid, err := IsWithinThresholdPeriod(t, pattern)
	if err != nil {
		return false, err
	}

	return !valid, nil
}
