package repository

import (
	"context"
	"errors"
	"fmt"

	"event-booking/internal/data/entity"
	"event-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Event, error)
	CountAll(ctx context.Context) (int64, error)

	// Update menerapkan perubahan admin di bawah row lock. available_tickets
	// dihitung ulang dari total baru, tidak pernah ditulis langsung.
	Update(ctx context.Context, upd *entity.Event) (*entity.Event, bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

const eventColumns = `id, organizer_id, name, description, location, event_date,
		ticket_price_cents, total_tickets, available_tickets, created_at, updated_at`

func scanEvent(row pgx.Row, event *entity.Event) error {
	return row.Scan(
		&event.ID,
		&event.OrganizerID,
		&event.Name,
		&event.Description,
		&event.Location,
		&event.EventDate,
		&event.TicketPriceCents,
		&event.TotalTickets,
		&event.AvailableTickets,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		event.ID,
		event.OrganizerID,
		event.Name,
		event.Description,
		event.Location,
		event.EventDate,
		event.TicketPriceCents,
		event.TotalTickets,
		event.AvailableTickets,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("name", event.Name),
		)
		return fmt.Errorf("create event %s: %w", event.Name, err)
	}

	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := scanEvent(r.db.QueryRow(ctx, query, id), &event)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find event by ID %s: %w", id.String(), err)
	}

	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY event_date ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list events", zap.Error(err))
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		var event entity.Event
		if err := scanEvent(rows, &event); err != nil {
			r.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, &event)
	}

	return events, rows.Err()
}

func (r *eventRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count events", zap.Error(err))
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

// Update mengunci row event dulu supaya tidak balapan dengan protokol
// reservasi, lalu menghitung ulang available dari total baru.
func (r *eventRepository) Update(ctx context.Context, upd *entity.Event) (*entity.Event, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`

	var event entity.Event
	err = scanEvent(tx.QueryRow(ctx, query, upd.ID), &event)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrEventNotFound
		return nil, false, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("lock event row %s: %w", upd.ID.String(), err)
	}

	event.Name = upd.Name
	event.Description = upd.Description
	event.Location = upd.Location
	event.EventDate = upd.EventDate
	event.TicketPriceCents = upd.TicketPriceCents
	event.UpdatedAt = upd.UpdatedAt

	sold := event.SoldTickets()
	clamped := event.AdjustTotalTickets(upd.TotalTickets)
	if clamped {
		r.log.Warn("Event capacity shrunk below sold count, available clamped to zero",
			zap.String("event_id", event.ID.String()),
			zap.Int("new_total", upd.TotalTickets),
			zap.Int("sold", sold),
		)
	}

	_, err = tx.Exec(ctx, `
		UPDATE events
		SET name = $2, description = $3, location = $4, event_date = $5,
		    ticket_price_cents = $6, total_tickets = $7, available_tickets = $8,
		    updated_at = $9
		WHERE id = $1`,
		event.ID,
		event.Name,
		event.Description,
		event.Location,
		event.EventDate,
		event.TicketPriceCents,
		event.TotalTickets,
		event.AvailableTickets,
		event.UpdatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("update event %s: %w", event.ID.String(), err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit transaction: %w", err)
	}

	return &event, clamped, nil
}

// Delete menolak menghapus event yang masih punya booking aktif.
func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var exists uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM events WHERE id = $1 FOR UPDATE`, id).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrEventNotFound
		return err
	}
	if err != nil {
		return fmt.Errorf("lock event row %s: %w", id.String(), err)
	}

	var active int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE event_id = $1 AND status != 'cancelled'`,
		id,
	).Scan(&active)
	if err != nil {
		return fmt.Errorf("count active bookings: %w", err)
	}
	if active > 0 {
		err = ErrEventHasBookings
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM bookings WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("delete cancelled bookings for event %s: %w", id.String(), err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete event %s: %w", id.String(), err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	r.log.Info("Event deleted", zap.String("event_id", id.String()))
	return nil
}
