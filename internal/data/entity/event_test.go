package entity_test

import (
	"errors"
	"testing"

	"event-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(total, available int) *entity.Event {
	return &entity.Event{
		TotalTickets:     total,
		AvailableTickets: available,
	}
}

func TestEventReserve(t *testing.T) {
	t.Run("success decrements available", func(t *testing.T) {
		event := newEvent(10, 10)

		err := event.Reserve(3)

		require.NoError(t, err)
		assert.Equal(t, 7, event.AvailableTickets)
		assert.Equal(t, 10, event.TotalTickets)
		assert.Equal(t, 3, event.SoldTickets())
	})

	t.Run("exact stock drains to zero", func(t *testing.T) {
		event := newEvent(5, 5)

		err := event.Reserve(5)

		require.NoError(t, err)
		assert.Equal(t, 0, event.AvailableTickets)
	})

	t.Run("insufficient stock returns typed error and leaves state untouched", func(t *testing.T) {
		event := newEvent(10, 2)

		err := event.Reserve(3)

		var stockErr *entity.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 2, stockErr.Available)
		assert.Equal(t, 3, stockErr.Requested)
		assert.Equal(t, 2, event.AvailableTickets)
	})

	t.Run("zero stock rejects any request", func(t *testing.T) {
		event := newEvent(10, 0)

		err := event.Reserve(1)

		var stockErr *entity.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 0, stockErr.Available)
	})
}

func TestEventRelease(t *testing.T) {
	t.Run("returns tickets to the pool", func(t *testing.T) {
		event := newEvent(10, 4)

		err := event.Release(3)

		require.NoError(t, err)
		assert.Equal(t, 7, event.AvailableTickets)
	})

	t.Run("overflow clamps to total and reports", func(t *testing.T) {
		event := newEvent(10, 9)

		err := event.Release(3)

		assert.True(t, errors.Is(err, entity.ErrReleaseOverflow))
		assert.Equal(t, 10, event.AvailableTickets)
	})

	t.Run("reserve then release is identity", func(t *testing.T) {
		event := newEvent(20, 20)

		require.NoError(t, event.Reserve(6))
		require.NoError(t, event.Release(6))

		assert.Equal(t, 20, event.AvailableTickets)
	})
}

func TestEventAdjustTotalTickets(t *testing.T) {
	t.Run("grow keeps sold count intact", func(t *testing.T) {
		event := newEvent(10, 4) // 6 sold

		clamped := event.AdjustTotalTickets(15)

		assert.False(t, clamped)
		assert.Equal(t, 15, event.TotalTickets)
		assert.Equal(t, 9, event.AvailableTickets)
		assert.Equal(t, 6, event.SoldTickets())
	})

	t.Run("shrink above sold count keeps available non-negative", func(t *testing.T) {
		event := newEvent(10, 7) // 3 sold

		clamped := event.AdjustTotalTickets(5)

		assert.False(t, clamped)
		assert.Equal(t, 5, event.TotalTickets)
		assert.Equal(t, 2, event.AvailableTickets)
	})

	t.Run("shrink below sold count clamps available to zero", func(t *testing.T) {
		event := newEvent(10, 2) // 8 sold

		clamped := event.AdjustTotalTickets(5)

		assert.True(t, clamped)
		assert.Equal(t, 5, event.TotalTickets)
		assert.Equal(t, 0, event.AvailableTickets)
	})
}
