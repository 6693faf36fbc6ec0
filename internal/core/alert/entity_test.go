package alert

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_Rank(t *testing.T) {
	assert.Less(t, SeverityLow.Rank(), SeverityModerate.Rank())
	assert.Less(t, SeverityModerate.Rank(), SeverityHigh.Rank())
	assert.Less(t, SeverityHigh.Rank(), SeverityExtreme.Rank())
	assert.False(t, SeverityUnknown.IsValid())
	assert.True(t, SeverityExtreme.IsValid())
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(SeverityModerate)
	require.NoError(t, err)
	assert.JSONEq(t, `"moderate"`, string(data))

	var s Severity
	require.NoError(t, json.Unmarshal([]byte(`"extreme"`), &s))
	assert.Equal(t, SeverityExtreme, s)
}

func TestCondition_IsValid(t *testing.T) {
	assert.True(t, ConditionFog.IsValid())
	assert.True(t, ConditionUVWarning.IsValid())
	assert.False(t, Condition("hail").IsValid())
}

func TestEndOfTomorrow(t *testing.T) {
	kyiv := time.FixedZone("EET", 2*60*60)

	tests := []struct {
		name     string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "Morning",
			now:      time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 3, 11, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name:     "LateEvening",
			now:      time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC),
			expected: time.Date(2024, 3, 11, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name:     "MonthBoundary",
			now:      time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 2, 29, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name:     "YearBoundary",
			now:      time.Date(2024, 12, 31, 1, 0, 0, 0, kyiv),
			expected: time.Date(2025, 1, 1, 23, 59, 59, 999000000, kyiv),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EndOfTomorrow(tt.now)
			assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
			assert.Equal(t, tt.now.Location(), got.Location())
		})
	}
}
