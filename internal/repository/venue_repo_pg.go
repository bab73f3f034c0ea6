package repository

import (
	"context"
	"errors"

	"github.com/dkurbatov/venuebooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VenueRepository interface {
	List(ctx context.Context, venueType domain.VenueType) ([]domain.Venue, error)
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	Create(ctx context.Context, venue *domain.Venue) error
	Update(ctx context.Context, venue *domain.Venue) error
	Delete(ctx context.Context, id int64) error
}

type PGVenueRepository struct {
	db *pgxpool.Pool
}

func NewVenueRepository(db *pgxpool.Pool) VenueRepository {
	return &PGVenueRepository{db: db}
}

const venueColumns = `id, name, type, description, price_cents, image_url, created_at, updated_at`

func (r *PGVenueRepository) List(ctx context.Context, venueType domain.VenueType) ([]domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues ORDER BY name`
	args := []any{}
	if venueType != "" {
		query = `SELECT ` + venueColumns + ` FROM venues WHERE type=$1 ORDER BY name`
		args = append(args, venueType)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]domain.Venue, 0)
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Type, &v.Description, &v.PriceCents, &v.ImageURL, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *PGVenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	row := r.db.QueryRow(ctx, `SELECT `+venueColumns+` FROM venues WHERE id=$1`, id)
	var v domain.Venue
	if err := row.Scan(&v.ID, &v.Name, &v.Type, &v.Description, &v.PriceCents, &v.ImageURL, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *PGVenueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	return r.db.QueryRow(ctx, `INSERT INTO venues (name, type, description, price_cents, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`, venue.Name, venue.Type, venue.Description, venue.PriceCents, venue.ImageURL).
		Scan(&venue.ID, &venue.CreatedAt, &venue.UpdatedAt)
}

func (r *PGVenueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	row := r.db.QueryRow(ctx, `UPDATE venues SET name=$1, type=$2, description=$3, price_cents=$4, image_url=$5, updated_at=now()
		WHERE id=$6
		RETURNING created_at, updated_at`, venue.Name, venue.Type, venue.Description, venue.PriceCents, venue.ImageURL, venue.ID)
	if err := row.Scan(&venue.CreatedAt, &venue.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

// Delete refuses to remove a venue that still has bookings. Reviews and
// wishlist entries cascade at the schema level.
func (r *PGVenueRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var bookings int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM bookings WHERE venue_id=$1`, id).Scan(&bookings); err != nil {
		return err
	}
	if bookings > 0 {
		return domain.ErrVenueHasBookings
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM venues WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit(ctx)
}

var _ VenueRepository = (*PGVenueRepository)(nil)
