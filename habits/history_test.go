package habits_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/habit-engine/habits"
)

func d(s string) habits.Date {
	date, err := habits.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return date
}

func TestParseDate(t *testing.T) {
	date, err := habits.ParseDate("2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", date.String())
	assert.Equal(t, d("2026-03-08"), date.Prev())
	assert.Equal(t, d("2026-03-10"), date.Next())
	assert.True(t, date.Before(d("2026-03-10")))

	_, err = habits.ParseDate("03/09/2026")
	assert.Error(t, err)

	_, err = habits.ParseDate("2026-02-30")
	assert.Error(t, err)
}

func TestConsecutiveQualifyingDays_UnbrokenRun(t *testing.T) {
	// GIVEN: four adjacent qualifying days ending at March 9
	// WHEN: counting up to March 9
	// THEN: four

	results := []habits.DayResult{
		{Date: d("2026-03-06"), Met: true},
		{Date: d("2026-03-07"), Met: true},
		{Date: d("2026-03-08"), Met: true},
		{Date: d("2026-03-09"), Met: true},
	}
	assert.Equal(t, 4, habits.ConsecutiveQualifyingDays(results, d("2026-03-09")))
}

func TestConsecutiveQualifyingDays_MissedDayBreaksRun(t *testing.T) {
	// GIVEN: a qualifying run interrupted by one missed day
	// WHEN: counting across the gap
	// THEN: only the days after the gap count

	results := []habits.DayResult{
		{Date: d("2026-03-05"), Met: true},
		{Date: d("2026-03-06"), Met: true},
		{Date: d("2026-03-07"), Met: false},
		{Date: d("2026-03-08"), Met: true},
		{Date: d("2026-03-09"), Met: true},
	}
	assert.Equal(t, 2, habits.ConsecutiveQualifyingDays(results, d("2026-03-09")))
}

func TestConsecutiveQualifyingDays_AbsentDayIsAGap(t *testing.T) {
	// GIVEN: qualifying days with no record at all for March 8
	// WHEN: counting up to March 9
	// THEN: the missing record breaks the streak

	results := []habits.DayResult{
		{Date: d("2026-03-07"), Met: true},
		{Date: d("2026-03-09"), Met: true},
	}
	assert.Equal(t, 1, habits.ConsecutiveQualifyingDays(results, d("2026-03-09")))
}

func TestConsecutiveQualifyingDays_UnorderedInput(t *testing.T) {
	results := []habits.DayResult{
		{Date: d("2026-03-09"), Met: true},
		{Date: d("2026-03-07"), Met: true},
		{Date: d("2026-03-08"), Met: true},
	}
	assert.Equal(t, 3, habits.ConsecutiveQualifyingDays(results, d("2026-03-09")))
}

func TestConsecutiveQualifyingDays_Empty(t *testing.T) {
	assert.Equal(t, 0, habits.ConsecutiveQualifyingDays(nil, d("2026-03-09")))
}

func TestQualifyingWindow_SortsAndTrims(t *testing.T) {
	results := []habits.DayResult{
		{Date: d("2026-03-07"), Met: true},
		{Date: d("2026-03-12"), Met: true}, // after the window end
		{Date: d("2026-03-09"), Met: false},
	}
	window := habits.QualifyingWindow(results, d("2026-03-10"))
	require.Len(t, window, 2)
	assert.Equal(t, d("2026-03-09"), window[0].Date)
	assert.Equal(t, d("2026-03-07"), window[1].Date)
}
