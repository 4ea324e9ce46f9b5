package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_Shape(t *testing.T) {
	w := Window(daysBack(0, 2), refDay, 7)
	require.Len(t, w, 7)

	// Oldest first, today last.
	assert.Equal(t, refDay.AddDate(0, 0, -6).Format("2006-01-02"), w[0].Date)
	assert.Equal(t, refDay.Format("2006-01-02"), w[6].Date)

	// refDay 2026-03-15 is a Sunday.
	assert.Equal(t, "Sun", w[6].Weekday)
	assert.Equal(t, 15, w[6].DayOfMonth)
}

func TestWindow_CompletedFlags(t *testing.T) {
	w := Window(daysBack(0, 2), refDay, 7)
	require.Len(t, w, 7)

	assert.True(t, w[6].Completed, "today marked complete")
	assert.False(t, w[5].Completed, "yesterday empty")
	assert.True(t, w[4].Completed, "two days ago marked complete")
	for i := 0; i < 4; i++ {
		assert.False(t, w[i].Completed)
	}
}

func TestWindow_ZeroSize(t *testing.T) {
	assert.Nil(t, Window(daysBack(0), refDay, 0))
	assert.Nil(t, Window(daysBack(0), refDay, -3))
}

func TestWindowRate_ThreeOfSeven(t *testing.T) {
	// D-6, D-5, D-4 completed, rest of window empty: round(100*3/7) = 43.
	assert.Equal(t, 43, WindowRate(daysBack(6, 5, 4), refDay, 7))
}

func TestWindowRate_AllValues(t *testing.T) {
	want := []int{0, 14, 29, 43, 57, 71, 86, 100}
	for k := 0; k <= 7; k++ {
		var offsets []int
		for i := 0; i < k; i++ {
			offsets = append(offsets, i)
		}
		assert.Equal(t, want[k], WindowRate(daysBack(offsets...), refDay, 7), "k=%d", k)
	}
}

func TestWindowRate_OutsideWindowIgnored(t *testing.T) {
	// Completions older than the window contribute nothing.
	assert.Equal(t, 0, WindowRate(daysBack(7, 8, 30), refDay, 7))
}

func TestWindowRate_MalformedSkipped(t *testing.T) {
	dates := append(daysBack(0), "03/15/2026")
	assert.Equal(t, 14, WindowRate(dates, refDay, 7))
}
