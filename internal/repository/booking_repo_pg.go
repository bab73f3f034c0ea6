package repository

import (
	"context"
	"errors"

	"github.com/dkurbatov/venuebooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListByVenueDate(ctx context.Context, venueID int64, date string) ([]domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	SetVerified(ctx context.Context, id int64, verified bool) (*domain.Booking, error)
	PurgeUnverifiedBefore(ctx context.Context, date string) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, reference, user_id, venue_id, booking_date, booking_time, requester_name, verified, created_at, updated_at`

// Create relies on the bookings_slot_key unique index: a concurrent insert
// for the same (venue, date, time) loses with ErrSlotTaken instead of
// producing a double booking.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (reference, user_id, venue_id, booking_date, booking_time, requester_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, verified, created_at, updated_at`,
		booking.Reference, booking.UserID, booking.VenueID, booking.Date, booking.Time, booking.RequesterName).
		Scan(&booking.ID, &booking.Verified, &booking.CreatedAt, &booking.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrSlotTaken
	}
	return err
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	return scanBooking(row)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY booking_date, booking_time`, userID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY booking_date, booking_time`)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByVenueDate(ctx context.Context, venueID int64, date string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE venue_id=$1 AND booking_date=$2 ORDER BY booking_time`, venueID, date)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET booking_date=$1, booking_time=$2, requester_name=$3, updated_at=now()
		WHERE id=$4
		RETURNING `+bookingColumns,
		booking.Date, booking.Time, booking.RequesterName, booking.ID)
	updated, err := scanBooking(row)
	if isUniqueViolation(err) {
		return domain.ErrSlotTaken
	}
	if err != nil {
		return err
	}
	*booking = *updated
	return nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) SetVerified(ctx context.Context, id int64, verified bool) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET verified=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumns, verified, id)
	return scanBooking(row)
}

func (r *PGBookingRepository) PurgeUnverifiedBefore(ctx context.Context, date string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `DELETE FROM bookings WHERE verified=FALSE AND booking_date < $1 RETURNING `+bookingColumns, date)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Reference, &b.UserID, &b.VenueID, &b.Date, &b.Time, &b.RequesterName, &b.Verified, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.Reference, &b.UserID, &b.VenueID, &b.Date, &b.Time, &b.RequesterName, &b.Verified, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
