package entity_test

import (
	"testing"

	"event-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusValid(t *testing.T) {
	assert.True(t, entity.BookingStatusPending.Valid())
	assert.True(t, entity.BookingStatusConfirmed.Valid())
	assert.True(t, entity.BookingStatusCancelled.Valid())
	assert.False(t, entity.BookingStatus("paid").Valid())
	assert.False(t, entity.BookingStatus("").Valid())
}

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		from    entity.BookingStatus
		to      entity.BookingStatus
		allowed bool
	}{
		{entity.BookingStatusPending, entity.BookingStatusConfirmed, true},
		{entity.BookingStatusPending, entity.BookingStatusCancelled, true},
		{entity.BookingStatusConfirmed, entity.BookingStatusCancelled, true},
		{entity.BookingStatusConfirmed, entity.BookingStatusPending, false},
		{entity.BookingStatusCancelled, entity.BookingStatusPending, false},
		{entity.BookingStatusCancelled, entity.BookingStatusConfirmed, false},
		{entity.BookingStatusPending, entity.BookingStatus("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
