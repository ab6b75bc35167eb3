package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"
	"event-booking/internal/queue"

	"github.com/google/uuid"
)

// memStore adalah pengganti Postgres untuk test service layer. Satu mutex
// per store memainkan peran row lock: semua operasi reservasi dan release
// berjalan serial, persis seperti transaksi yang mengantri di
// SELECT ... FOR UPDATE.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	events   map[uuid.UUID]*entity.Event
	bookings map[uuid.UUID]*entity.Booking
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]*entity.User),
		events:   make(map[uuid.UUID]*entity.Event),
		bookings: make(map[uuid.UUID]*entity.Booking),
	}
}

func newMemRepository() (*repository.Repository, *memStore) {
	store := newMemStore()
	return &repository.Repository{
		User:    &memUserRepo{s: store},
		Event:   &memEventRepo{s: store},
		Booking: &memBookingRepo{s: store},
	}, store
}

func (s *memStore) eventSnapshot(id uuid.UUID) *entity.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev, ok := s.events[id]; ok {
		cp := *ev
		return &cp
	}
	return nil
}

func (s *memStore) bookingSnapshot(id uuid.UUID) *entity.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok {
		cp := *b
		return &cp
	}
	return nil
}

// ---------------- users ----------------

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// ---------------- events ----------------

type memEventRepo struct{ s *memStore }

func (r *memEventRepo) Create(ctx context.Context, event *entity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *event
	r.s.events[event.ID] = &cp
	return nil
}

func (r *memEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	event, ok := r.s.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	cp := *event
	return &cp, nil
}

func (r *memEventRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	events := make([]*entity.Event, 0, len(r.s.events))
	for _, event := range r.s.events {
		cp := *event
		events = append(events, &cp)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].EventDate.Before(events[j].EventDate) })
	return paginate(events, limit, offset), nil
}

func (r *memEventRepo) CountAll(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.events)), nil
}

func (r *memEventRepo) Update(ctx context.Context, upd *entity.Event) (*entity.Event, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.events[upd.ID]
	if !ok {
		return nil, false, repository.ErrEventNotFound
	}

	next := *current
	next.Name = upd.Name
	next.Description = upd.Description
	next.Location = upd.Location
	next.EventDate = upd.EventDate
	next.TicketPriceCents = upd.TicketPriceCents
	next.UpdatedAt = upd.UpdatedAt
	clamped := next.AdjustTotalTickets(upd.TotalTickets)

	r.s.events[upd.ID] = &next
	cp := next
	return &cp, clamped, nil
}

func (r *memEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	for _, booking := range r.s.bookings {
		if booking.EventID == id && booking.Status != entity.BookingStatusCancelled {
			return repository.ErrEventHasBookings
		}
	}
	for bookingID, booking := range r.s.bookings {
		if booking.EventID == id {
			delete(r.s.bookings, bookingID)
		}
	}
	delete(r.s.events, id)
	return nil
}

// ---------------- bookings ----------------

type memBookingRepo struct{ s *memStore }

func (r *memBookingRepo) CreateWithReservation(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	event, ok := r.s.events[booking.EventID]
	if !ok {
		return nil, repository.ErrEventNotFound
	}

	if err := event.Reserve(booking.Quantity); err != nil {
		return nil, err
	}

	booking.TotalPriceCents = int64(booking.Quantity) * event.TicketPriceCents

	cp := *booking
	r.s.bookings[booking.ID] = &cp
	return booking, nil
}

func (r *memBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	cp := *booking
	return &cp, nil
}

func (r *memBookingRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return paginate(r.collect(func(*entity.Booking) bool { return true }), limit, offset), nil
}

func (r *memBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return paginate(r.collect(func(b *entity.Booking) bool { return b.UserID == userID }), limit, offset), nil
}

func (r *memBookingRepo) CountAll(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.bookings)), nil
}

func (r *memBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, booking := range r.s.bookings {
		if booking.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memBookingRepo) UpdateStatusWithRelease(ctx context.Context, id uuid.UUID, next entity.BookingStatus) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}

	if booking.Status == next {
		cp := *booking
		return &cp, nil
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", entity.ErrInvalidTransition, booking.Status, next)
	}

	if next == entity.BookingStatusCancelled {
		if event, ok := r.s.events[booking.EventID]; ok {
			_ = event.Release(booking.Quantity)
		}
	}

	booking.Status = next
	cp := *booking
	return &cp, nil
}

func (r *memBookingRepo) DeleteWithRelease(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	booking, ok := r.s.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}

	if booking.Status != entity.BookingStatusCancelled {
		if event, ok := r.s.events[booking.EventID]; ok {
			_ = event.Release(booking.Quantity)
		}
	}

	delete(r.s.bookings, id)
	return nil
}

func (r *memBookingRepo) collect(match func(*entity.Booking) bool) []*entity.Booking {
	bookings := make([]*entity.Booking, 0)
	for _, booking := range r.s.bookings {
		if match(booking) {
			cp := *booking
			bookings = append(bookings, &cp)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID.String() < bookings[j].ID.String()
		}
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
	return bookings
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ---------------- publisher ----------------

type capturingPublisher struct {
	mu        sync.Mutex
	created   []queue.BookingCreatedEvent
	cancelled []queue.BookingCancelledEvent
}

func (p *capturingPublisher) PublishBookingCreated(ctx context.Context, event queue.BookingCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, event)
	return nil
}

func (p *capturingPublisher) PublishBookingCancelled(ctx context.Context, event queue.BookingCancelledEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelled = append(p.cancelled, event)
	return nil
}

func (p *capturingPublisher) createdCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.created)
}

func (p *capturingPublisher) cancelledCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cancelled)
}
