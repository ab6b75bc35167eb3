package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-booking/internal/data/entity"
	"event-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingRepository adalah satu-satunya penulis events.available_tickets.
// Semua mutasi stok terjadi di dalam transaksi yang memegang row lock
// (SELECT ... FOR UPDATE) pada event terkait, sehingga check-then-decrement
// bersifat atomik terhadap reservasi lain di event yang sama.
type BookingRepository interface {
	CreateWithReservation(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateStatusWithRelease(ctx context.Context, id uuid.UUID, next entity.BookingStatus) (*entity.Booking, error)
	DeleteWithRelease(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, event_id, quantity, total_price_cents, status, created_at, updated_at`

func scanBooking(row pgx.Row, booking *entity.Booking) error {
	return row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.EventID,
		&booking.Quantity,
		&booking.TotalPriceCents,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
}

// lockEvent mengambil row event dengan lock eksklusif. Transaksi lain yang
// meminta lock pada row yang sama akan menunggu sampai commit/rollback.
func (r *bookingRepository) lockEvent(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	err := tx.QueryRow(ctx, `
		SELECT id, total_tickets, available_tickets, ticket_price_cents
		FROM events
		WHERE id = $1
		FOR UPDATE`,
		eventID,
	).Scan(&event.ID, &event.TotalTickets, &event.AvailableTickets, &event.TicketPriceCents)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock event row %s: %w", eventID.String(), err)
	}
	return &event, nil
}

// CreateWithReservation menjalankan protokol reservasi:
// lock row event -> cek stok -> snapshot harga -> insert booking + decrement,
// semua dalam satu transaksi. Kegagalan di titik manapun = rollback total.
func (r *bookingRepository) CreateWithReservation(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	event, err := r.lockEvent(ctx, tx, booking.EventID)
	if err != nil {
		return nil, err
	}

	// Cek stok di bawah lock. InsufficientStockError membawa payload
	// {available, requested} untuk caller.
	if err = event.Reserve(booking.Quantity); err != nil {
		return nil, err
	}

	// Harga di-snapshot saat booking; perubahan harga event berikutnya
	// tidak mengubah booking yang sudah ada.
	booking.TotalPriceCents = int64(booking.Quantity) * event.TicketPriceCents

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		booking.ID,
		booking.UserID,
		booking.EventID,
		booking.Quantity,
		booking.TotalPriceCents,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE events SET available_tickets = $2, updated_at = $3 WHERE id = $1`,
		event.ID, event.AvailableTickets, booking.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("decrement available tickets: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	r.log.Info("Booking reserved",
		zap.String("booking_id", booking.ID.String()),
		zap.String("event_id", booking.EventID.String()),
		zap.Int("quantity", booking.Quantity),
		zap.Int("remaining", event.AvailableTickets),
	)

	return booking, nil
}

// UpdateStatusWithRelease memvalidasi transisi state machine dan, khusus
// transisi ke cancelled, mengembalikan stok tepat satu kali. Cancel terhadap
// booking yang sudah cancelled adalah no-op, bukan double release.
func (r *bookingRepository) UpdateStatusWithRelease(ctx context.Context, id uuid.UUID, next entity.BookingStatus) (*entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Lock row booking juga, supaya dua cancel bersamaan tidak sama-sama
	// melihat status lama.
	var booking entity.Booking
	err = scanBooking(tx.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id,
	), &booking)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrBookingNotFound
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("lock booking row %s: %w", id.String(), err)
	}

	if booking.Status == next {
		// No-op: commit tanpa perubahan.
		if err = tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("commit transaction: %w", err)
		}
		return &booking, nil
	}

	if !booking.Status.CanTransitionTo(next) {
		err = fmt.Errorf("%w: %s -> %s", entity.ErrInvalidTransition, booking.Status, next)
		return nil, err
	}

	now := time.Now()

	if next == entity.BookingStatusCancelled {
		var event *entity.Event
		event, err = r.lockEvent(ctx, tx, booking.EventID)
		if err != nil {
			return nil, err
		}

		if relErr := event.Release(booking.Quantity); relErr != nil {
			// Invariant violation: jangan diam-diam, tapi state sudah
			// di-clamp jadi tetap aman untuk dilanjutkan.
			r.log.Error("Inventory release overflow detected",
				zap.Error(relErr),
				zap.String("booking_id", booking.ID.String()),
				zap.String("event_id", event.ID.String()),
				zap.Int("quantity", booking.Quantity),
			)
		}

		_, err = tx.Exec(ctx,
			`UPDATE events SET available_tickets = $2, updated_at = $3 WHERE id = $1`,
			event.ID, event.AvailableTickets, now,
		)
		if err != nil {
			return nil, fmt.Errorf("restore available tickets: %w", err)
		}
	}

	booking.Status = next
	booking.UpdatedAt = now

	_, err = tx.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`,
		booking.ID, booking.Status, booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(next), err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	r.log.Info("Booking status updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(next)),
	)

	return &booking, nil
}

// DeleteWithRelease setara cancel+delete dalam satu transaksi: booking yang
// belum cancelled mengembalikan stoknya dulu, booking cancelled dihapus
// tanpa menyentuh inventory.
func (r *bookingRepository) DeleteWithRelease(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var booking entity.Booking
	err = scanBooking(tx.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id,
	), &booking)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrBookingNotFound
		return err
	}
	if err != nil {
		return fmt.Errorf("lock booking row %s: %w", id.String(), err)
	}

	if booking.Status != entity.BookingStatusCancelled {
		var event *entity.Event
		event, err = r.lockEvent(ctx, tx, booking.EventID)
		if err != nil {
			return err
		}

		if relErr := event.Release(booking.Quantity); relErr != nil {
			r.log.Error("Inventory release overflow detected",
				zap.Error(relErr),
				zap.String("booking_id", booking.ID.String()),
				zap.String("event_id", event.ID.String()),
				zap.Int("quantity", booking.Quantity),
			)
		}

		_, err = tx.Exec(ctx,
			`UPDATE events SET available_tickets = $2, updated_at = $3 WHERE id = $1`,
			event.ID, event.AvailableTickets, time.Now(),
		)
		if err != nil {
			return fmt.Errorf("restore available tickets: %w", err)
		}
	}

	if _, err = tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := scanBooking(r.db.QueryRow(ctx, query, id), &booking)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list bookings by user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bookings by user %s: %w", userID.String(), err)
	}
	return count, nil
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		if err := scanBooking(rows, &booking); err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}
	return bookings, rows.Err()
}
