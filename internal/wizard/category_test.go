package wizard_test

import (
	"testing"

	"event-slot-wizard/internal/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSlot(t *testing.T) (*wizard.Wizard, wizard.Date) {
	t.Helper()
	w := newTestWizard(t, nil)
	d := wizard.MustParseDate("2025-03-03")
	w.ToggleDateSelection(d)
	_, err := w.AddTimeSlot(d)
	require.NoError(t, err)
	return w, d
}

func TestAddTicketCategoryToSlot(t *testing.T) {
	w, d := setupSlot(t)

	id, err := w.AddTicketCategoryToSlot(d, 0)
	require.NoError(t, err)
	assert.Equal(t, "cat-1", id)

	assert.Equal(t, []wizard.TicketCategory{{ID: "cat-1"}}, w.State().TimeSlots[d][0].SeatCategories)

	id2, err := w.AddTicketCategoryToSlot(d, 0)
	require.NoError(t, err)
	assert.Equal(t, "cat-2", id2)

	_, err = w.AddTicketCategoryToSlot(d, 5)
	assert.ErrorIs(t, err, wizard.ErrSlotNotFound)
}

func TestAddThenRemoveCategory_RoundTrip(t *testing.T) {
	w, d := setupSlot(t)
	first, _ := w.AddTicketCategoryToSlot(d, 0)
	require.NoError(t, w.UpdateTicketCategoryInSlot(d, 0, first, wizard.CategoryFieldLabel, "VIP"))
	before := append([]wizard.TicketCategory{}, w.State().TimeSlots[d][0].SeatCategories...)

	id, err := w.AddTicketCategoryToSlot(d, 0)
	require.NoError(t, err)
	require.NoError(t, w.RemoveTicketCategoryFromSlot(d, 0, id))

	assert.Equal(t, before, w.State().TimeSlots[d][0].SeatCategories)
}

func TestUpdateTicketCategoryInSlot(t *testing.T) {
	t.Run("Success - field aliases", func(t *testing.T) {
		w, d := setupSlot(t)
		id, _ := w.AddTicketCategoryToSlot(d, 0)

		require.NoError(t, w.UpdateTicketCategoryInSlot(d, 0, id, wizard.CategoryFieldName, "VIP"))
		require.NoError(t, w.UpdateTicketCategoryInSlot(d, 0, id, wizard.CategoryFieldPrice, "49.5"))
		require.NoError(t, w.UpdateTicketCategoryInSlot(d, 0, id, wizard.CategoryFieldQuantity, "120"))

		c := w.State().TimeSlots[d][0].SeatCategories[0]
		assert.Equal(t, "VIP", c.Label)
		assert.Equal(t, 49.5, c.Price)
		assert.Equal(t, 120, c.TotalTickets)

		require.NoError(t, w.UpdateTicketCategoryInSlot(d, 0, id, wizard.CategoryFieldLabel, "Balcony"))
		require.NoError(t, w.UpdateTicketCategoryInSlot(d, 0, id, wizard.CategoryFieldTotalTickets, "80"))
		c = w.State().TimeSlots[d][0].SeatCategories[0]
		assert.Equal(t, "Balcony", c.Label)
		assert.Equal(t, 80, c.TotalTickets)
	})

	t.Run("Success - invalid numbers coerce to zero", func(t *testing.T) {
		w, d := setupSlot(t)
		id, _ := w.AddTicketCategoryToSlot(d, 0)
		require.NoError(t, w.UpdateTicketCategoryInSlot(d, 0, id, wizard.CategoryFieldPrice, "10"))

		for _, v := range []string{"abc", "NaN", "-5", "Inf", ""} {
			require.NoError(t, w.UpdateTicketCategoryInSlot(d, 0, id, wizard.CategoryFieldPrice, v))
			assert.Equal(t, 0.0, w.State().TimeSlots[d][0].SeatCategories[0].Price, v)

			require.NoError(t, w.UpdateTicketCategoryInSlot(d, 0, id, wizard.CategoryFieldQuantity, v))
			assert.Equal(t, 0, w.State().TimeSlots[d][0].SeatCategories[0].TotalTickets, v)
		}

		require.NoError(t, w.UpdateTicketCategoryInSlot(d, 0, id, wizard.CategoryFieldQuantity, "12.7"))
		assert.Equal(t, 12, w.State().TimeSlots[d][0].SeatCategories[0].TotalTickets)
	})

	t.Run("Failed - unknown id or field", func(t *testing.T) {
		w, d := setupSlot(t)
		id, _ := w.AddTicketCategoryToSlot(d, 0)

		assert.ErrorIs(t, w.UpdateTicketCategoryInSlot(d, 0, "missing", wizard.CategoryFieldPrice, "1"), wizard.ErrCategoryNotFound)
		assert.ErrorIs(t, w.UpdateTicketCategoryInSlot(d, 0, id, "booked", "3"), wizard.ErrInvalidField)
		assert.ErrorIs(t, w.RemoveTicketCategoryFromSlot(d, 0, "missing"), wizard.ErrCategoryNotFound)
	})
}

func TestSlotRevenue(t *testing.T) {
	slot := wizard.TimeSlot{SeatCategories: []wizard.TicketCategory{
		{ID: "a", Price: 10, TotalTickets: 5},
		{ID: "b", Price: 20, TotalTickets: 2},
	}}
	assert.Equal(t, 90.0, wizard.SlotRevenue(slot))
	assert.Equal(t, 0.0, wizard.SlotRevenue(wizard.TimeSlot{}))
}
