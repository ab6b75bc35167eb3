package usecase_test

import (
	"context"
	"testing"
	"time"

	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEventService(repo *repository.Repository) usecase.EventService {
	return usecase.NewEventService(repo, zap.NewNop())
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMemRepository()
	svc := newEventService(repo)

	event, err := svc.CreateEvent(ctx, uuid.New().String(), &request.CreateEventRequest{
		Name:             "Konser Akhir Tahun",
		Location:         "Surabaya",
		EventDate:        time.Now().Add(60 * 24 * time.Hour),
		TicketPriceCents: 150000,
		TotalTickets:     200,
	})

	require.NoError(t, err)
	assert.Equal(t, 200, event.TotalTickets)
	// Event baru mulai dengan seluruh stok tersedia.
	assert.Equal(t, 200, event.AvailableTickets)
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update leaves omitted fields alone", func(t *testing.T) {
		repo, _ := newMemRepository()
		svc := newEventService(repo)
		event := seedEvent(t, repo, 50, 2000)

		updated, err := svc.UpdateEvent(ctx, event.ID.String(), &request.UpdateEventRequest{
			Name: strPtr("Java Jazz Festival 2027"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Java Jazz Festival 2027", updated.Name)
		assert.Equal(t, event.Location, updated.Location)
		assert.Equal(t, 50, updated.TotalTickets)
		assert.Equal(t, 50, updated.AvailableTickets)
	})

	t.Run("growing capacity adds to available", func(t *testing.T) {
		repo, store := newMemRepository()
		eventSvc := newEventService(repo)
		bookingSvc := newBookingService(repo, nil)
		event := seedEvent(t, repo, 10, 1000)

		_, err := bookingSvc.CreateBooking(ctx, uuid.New().String(), &request.CreateBookingRequest{
			EventID:  event.ID.String(),
			Quantity: 4,
		})
		require.NoError(t, err)

		updated, err := eventSvc.UpdateEvent(ctx, event.ID.String(), &request.UpdateEventRequest{
			TotalTickets: intPtr(20),
		})

		require.NoError(t, err)
		assert.Equal(t, 20, updated.TotalTickets)
		assert.Equal(t, 16, updated.AvailableTickets)
		assert.Equal(t, 4, store.eventSnapshot(event.ID).SoldTickets())
	})

	t.Run("shrinking below sold count clamps available to zero", func(t *testing.T) {
		repo, _ := newMemRepository()
		eventSvc := newEventService(repo)
		bookingSvc := newBookingService(repo, nil)
		event := seedEvent(t, repo, 10, 1000)

		_, err := bookingSvc.CreateBooking(ctx, uuid.New().String(), &request.CreateBookingRequest{
			EventID:  event.ID.String(),
			Quantity: 8,
		})
		require.NoError(t, err)

		updated, err := eventSvc.UpdateEvent(ctx, event.ID.String(), &request.UpdateEventRequest{
			TotalTickets: intPtr(5),
		})

		require.NoError(t, err)
		assert.Equal(t, 5, updated.TotalTickets)
		assert.Equal(t, 0, updated.AvailableTickets)
	})

	t.Run("unknown event returns not found", func(t *testing.T) {
		repo, _ := newMemRepository()
		svc := newEventService(repo)

		_, err := svc.UpdateEvent(ctx, uuid.New().String(), &request.UpdateEventRequest{
			Name: strPtr("Ghost Event"),
		})

		assert.ErrorIs(t, err, repository.ErrEventNotFound)
	})
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked while active bookings exist", func(t *testing.T) {
		repo, _ := newMemRepository()
		eventSvc := newEventService(repo)
		bookingSvc := newBookingService(repo, nil)
		event := seedEvent(t, repo, 10, 1000)
		userID := uuid.New().String()

		booking, err := bookingSvc.CreateBooking(ctx, userID, &request.CreateBookingRequest{
			EventID:  event.ID.String(),
			Quantity: 2,
		})
		require.NoError(t, err)

		err = eventSvc.DeleteEvent(ctx, event.ID.String())
		assert.ErrorIs(t, err, repository.ErrEventHasBookings)

		// Setelah semua booking dibatalkan, delete boleh jalan.
		_, err = bookingSvc.UpdateBookingStatus(ctx, userID, "user", booking.ID,
			&request.UpdateBookingStatusRequest{Status: "cancelled"})
		require.NoError(t, err)

		require.NoError(t, eventSvc.DeleteEvent(ctx, event.ID.String()))

		_, err = eventSvc.GetEvent(ctx, event.ID.String())
		assert.ErrorIs(t, err, repository.ErrEventNotFound)
	})

	t.Run("empty event deletes cleanly", func(t *testing.T) {
		repo, _ := newMemRepository()
		svc := newEventService(repo)
		event := seedEvent(t, repo, 10, 1000)

		require.NoError(t, svc.DeleteEvent(ctx, event.ID.String()))
	})
}

func TestListEvents(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMemRepository()
	svc := newEventService(repo)

	for i := 0; i < 5; i++ {
		seedEvent(t, repo, 10, 1000)
	}

	page, err := svc.ListEvents(ctx, &request.PaginatedRequest{Page: 1, PerPage: 3})
	require.NoError(t, err)
	assert.Len(t, page.Data, 3)
	assert.EqualValues(t, 5, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}
