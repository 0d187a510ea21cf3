package auth_test

import (
	"testing"
	"time"

	"github.com/YOUBAZ/SafeStay/auth"
	"github.com/stretchr/testify/assert"
)

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		expected  time.Duration
		expectErr bool
	}{
		{name: "minutes", pattern: "15m", expected: 15 * time.Minute},
		{name: "hours", pattern: "24h", expected: 24 * time.Hour},
		{name: "days", pattern: "7d", expected: 7 * 24 * time.Hour},
		{name: "single day", pattern: "1d", expected: 24 * time.Hour},
		{name: "compound duration", pattern: "2h30m", expected: 2*time.Hour + 30*time.Minute},
		{name: "padded input", pattern: "  15m  ", expected: 15 * time.Minute},
		{name: "invalid expression", pattern: "soon", expectErr: true},
		{name: "empty", pattern: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			duration, err := auth.ParseExpiry(tt.pattern)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, duration)
			}
		})
	}
}

func TestIsWithinThresholdPeriod(t *testing.T) {
	tests := []struct {
		name          string
		inputTime     time.Time
		thresholdExpr string
		expected      bool
		expectErr     bool
	}{
		{
			name:          "Within 1 hour threshold",
			inputTime:     time.Now().Add(-30 * time.Minute),
			thresholdExpr: "1h",
			expected:      true,
		},
		{
			name:          "Outside 1 hour threshold",
			inputTime:     time.Now().Add(-90 * time.Minute),
			thresholdExpr: "1h",
			expected:      false,
		},
		{
			name:          "Within day threshold",
			inputTime:     time.Now().Add(-20 * time.Hour),
			thresholdExpr: "1d",
			expected:      true,
		},
		{
			name:          "Future time",
			inputTime:     time.Now().Add(1 * time.Hour),
			thresholdExpr: "2h",
			expected:      true,
		},
		{
			name:          "Invalid threshold expression",
			inputTime:     time.Now(),
			thresholdExpr: "invalid",
			expectErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := auth.IsWithinThresholdPeriod(tt.inputTime, tt.thresholdExpr)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestThresholdFunctionsComplementary(t *testing.T) {
	testTimes := []time.Time{
		time.Now(),
		time.Now().Add(-30 * time.Minute),
		time.Now().Add(-2 * time.Hour),
		time.Now().Add(1 * time.Hour),
	}

	thresholds := []string{
		"1h",
		"24h",
		"15m",
		"7d",
	}

	for _, inputTime := range testTimes {
		for _, threshold := range thresholds {
			within, err1 := auth.IsWithinThresholdPeriod(inputTime, threshold)
			outside, err2 := auth.IsOutsideThresholdPeriod(inputTime, threshold)

			assert.NoError(t, err1)
			assert.NoError(t, err2)

			assert.NotEqual(t, within, outside, "IsWithinThresholdPeriod and IsOutsideThresholdPeriod should be complementary")
		}
	}
}
