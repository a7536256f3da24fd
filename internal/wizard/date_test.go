package wizard_test

import (
	"encoding/json"
	"testing"
	"time"

	"event-slot-wizard/internal/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(s string) *wizard.Date {
	d := wizard.MustParseDate(s)
	return &d
}

func TestParseDate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		d, err := wizard.ParseDate("2025-03-01")
		require.NoError(t, err)
		assert.Equal(t, wizard.Date{Year: 2025, Month: time.March, Day: 1}, d)
		assert.Equal(t, "2025-03-01", d.String())
	})

	t.Run("Failed - invalid values", func(t *testing.T) {
		for _, s := range []string{"", "2025-3-1", "2025/03/01", "2025-02-30", "2025-13-01", "abcd-ef-gh", "2025-+1-01", "+025-01-01", "2025-01--1"} {
			_, err := wizard.ParseDate(s)
			assert.ErrorIs(t, err, wizard.ErrInvalidDate, s)
		}
	})

	t.Run("Success - leap day", func(t *testing.T) {
		_, err := wizard.ParseDate("2024-02-29")
		assert.NoError(t, err)
	})
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2025-03-01 20:00 UTC 在東京已是 3/2
	instant := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, wizard.MustParseDate("2025-03-02"), wizard.DateOf(instant, tokyo))
	assert.Equal(t, wizard.MustParseDate("2025-03-01"), wizard.DateOf(instant, time.UTC))
}

func TestGetDatesBetween(t *testing.T) {
	t.Run("Success - inclusive range", func(t *testing.T) {
		dates := wizard.GetDatesBetween(datePtr("2025-03-01"), datePtr("2025-03-03"))
		require.Len(t, dates, 3)
		assert.Equal(t, "2025-03-01", dates[0].String())
		assert.Equal(t, "2025-03-02", dates[1].String())
		assert.Equal(t, "2025-03-03", dates[2].String())
	})

	t.Run("Success - crosses month and year boundaries without gaps", func(t *testing.T) {
		start, end := datePtr("2024-12-28"), datePtr("2025-03-02")
		dates := wizard.GetDatesBetween(start, end)

		assert.Equal(t, *start, dates[0])
		assert.Equal(t, *end, dates[len(dates)-1])
		assert.Len(t, dates, 65)
		for i := 1; i < len(dates); i++ {
			assert.Equal(t, dates[i-1].AddDays(1), dates[i])
			assert.True(t, dates[i-1].Before(dates[i]))
		}
	})

	t.Run("Success - single day", func(t *testing.T) {
		dates := wizard.GetDatesBetween(datePtr("2025-03-01"), datePtr("2025-03-01"))
		assert.Equal(t, []wizard.Date{wizard.MustParseDate("2025-03-01")}, dates)
	})

	t.Run("Empty - start after end", func(t *testing.T) {
		dates := wizard.GetDatesBetween(datePtr("2025-03-03"), datePtr("2025-03-01"))
		assert.Empty(t, dates)
	})

	t.Run("Empty - missing bound", func(t *testing.T) {
		assert.Empty(t, wizard.GetDatesBetween(nil, datePtr("2025-03-01")))
		assert.Empty(t, wizard.GetDatesBetween(datePtr("2025-03-01"), nil))
	})
}

func TestDateRange_Contains(t *testing.T) {
	r := wizard.DateRange{StartDate: datePtr("2025-03-01"), EndDate: datePtr("2025-03-05")}

	assert.True(t, r.Contains(wizard.MustParseDate("2025-03-01")))
	assert.True(t, r.Contains(wizard.MustParseDate("2025-03-05")))
	assert.False(t, r.Contains(wizard.MustParseDate("2025-02-28")))
	assert.False(t, r.Contains(wizard.MustParseDate("2025-03-06")))
	assert.False(t, wizard.DateRange{}.Contains(wizard.MustParseDate("2025-03-01")))
}

func TestDate_JSON(t *testing.T) {
	state := wizard.NewState("evt-1")
	d := wizard.MustParseDate("2025-03-01")
	state.SelectedDates = []wizard.Date{d}
	state.TimeSlots[d] = []wizard.TimeSlot{{StartTime: "10:00", EndTime: "11:00", Duration: "1h 0m", SeatCategories: []wizard.TicketCategory{}}}

	raw, err := json.Marshal(state)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"selected_dates":["2025-03-01"]`)
	assert.Contains(t, string(raw), `"time_slots":{"2025-03-01":[`)

	var decoded wizard.State
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, state.TimeSlots, decoded.TimeSlots)
	assert.Equal(t, state.SelectedDates, decoded.SelectedDates)
}
