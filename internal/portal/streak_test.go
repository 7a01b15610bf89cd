package portal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(offset int) time.Time {
	return time.Now().AddDate(0, 0, offset)
}

func TestCurrentStreak_Empty(t *testing.T) {
	assert.Equal(t, 0, CurrentStreak(nil, time.Now()))
}

func TestCurrentStreak_TodayOnly(t *testing.T) {
	days := []time.Time{day(0)}
	assert.Equal(t, 1, CurrentStreak(days, time.Now()))
}

func TestCurrentStreak_ConsecutiveDays(t *testing.T) {
	days := []time.Time{day(0), day(-1), day(-2)}
	assert.Equal(t, 3, CurrentStreak(days, time.Now()))
}

func TestCurrentStreak_SurvivesMissingToday(t *testing.T) {
	// latest visit was yesterday; today's session may still happen
	days := []time.Time{day(-1), day(-2), day(-3)}
	assert.Equal(t, 3, CurrentStreak(days, time.Now()))
}

func TestCurrentStreak_BrokenByGap(t *testing.T) {
	days := []time.Time{day(0), day(-1), day(-3), day(-4)}
	assert.Equal(t, 2, CurrentStreak(days, time.Now()))
}

func TestCurrentStreak_StaleHistory(t *testing.T) {
	days := []time.Time{day(-2), day(-3)}
	assert.Equal(t, 0, CurrentStreak(days, time.Now()))
}

func TestCurrentStreak_IgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 50, 0, 0, time.UTC)
	days := []time.Time{
		time.Date(2026, 8, 31, 0, 5, 0, 0, time.UTC),
		time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 2, CurrentStreak(days, now))
}
