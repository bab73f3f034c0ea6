package repository

import (
	"context"

	"github.com/dkurbatov/venuebooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WishlistRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.WishlistEntry, error)
	Toggle(ctx context.Context, userID, venueID int64) (added bool, err error)
	Remove(ctx context.Context, userID, venueID int64) (removed bool, err error)
}

type PGWishlistRepository struct {
	db *pgxpool.Pool
}

func NewWishlistRepository(db *pgxpool.Pool) WishlistRepository {
	return &PGWishlistRepository{db: db}
}

func (r *PGWishlistRepository) ListByUser(ctx context.Context, userID int64) ([]domain.WishlistEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, venue_id, created_at FROM wishlist WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.WishlistEntry, 0)
	for rows.Next() {
		var e domain.WishlistEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.VenueID, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Toggle inserts the pair or, when it already exists, removes it. Both
// branches run in one transaction so two racing toggles settle on insert
// vs delete instead of a duplicate row.
func (r *PGWishlistRepository) Toggle(ctx context.Context, userID, venueID int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `INSERT INTO wishlist (user_id, venue_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, venue_id) DO NOTHING
		RETURNING id`, userID, venueID).Scan(&id)
	switch {
	case err == nil:
		return true, tx.Commit(ctx)
	case err == pgx.ErrNoRows:
		if _, err := tx.Exec(ctx, `DELETE FROM wishlist WHERE user_id=$1 AND venue_id=$2`, userID, venueID); err != nil {
			return false, err
		}
		return false, tx.Commit(ctx)
	default:
		return false, err
	}
}

func (r *PGWishlistRepository) Remove(ctx context.Context, userID, venueID int64) (bool, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM wishlist WHERE user_id=$1 AND venue_id=$2`, userID, venueID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

var _ WishlistRepository = (*PGWishlistRepository)(nil)
