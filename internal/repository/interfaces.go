package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/playercv/platform/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// ProfileRepository provides access to player_profiles.
type ProfileRepository interface {
	// Insert creates the parent row and fills in the database timestamps.
	Insert(ctx context.Context, db DBTX, profile *domain.PlayerProfile) error

	// FindByID returns a profile, or nil if not found.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.PlayerProfile, error)

	// List returns profiles matching the filter, ordered by created_at DESC.
	List(ctx context.Context, db DBTX, filter domain.ListFilter) ([]domain.PlayerProfile, error)

	// Update writes the scalar fields present in patch with a dynamic SET clause.
	// Returns false if the profile does not exist.
	Update(ctx context.Context, db DBTX, id uuid.UUID, patch domain.ProfilePatch) (bool, error)

	// Touch bumps updated_at. Returns false if the profile does not exist.
	Touch(ctx context.Context, db DBTX, id uuid.UUID) (bool, error)

	// Delete removes the profile; child rows go with it by cascade.
	// Returns false if the profile did not exist.
	Delete(ctx context.Context, db DBTX, id uuid.UUID) (bool, error)
}

// ChildRepository provides access to the four owned collections.
// Replace* deletes every row of the collection for the profile, then inserts
// items in input order; order defaults to the item's index.
// List* returns rows for all given profiles sorted by sort_order, created_at.
type ChildRepository interface {
	ReplaceQualities(ctx context.Context, db DBTX, profileID uuid.UUID, items []domain.QualityInput) error
	ReplaceSeasons(ctx context.Context, db DBTX, profileID uuid.UUID, items []domain.SeasonInput) error
	ReplaceFormations(ctx context.Context, db DBTX, profileID uuid.UUID, items []domain.FormationInput) error
	ReplaceInterests(ctx context.Context, db DBTX, profileID uuid.UUID, items []domain.InterestInput) error

	ListQualities(ctx context.Context, db DBTX, profileIDs []uuid.UUID) ([]domain.Quality, error)
	ListSeasons(ctx context.Context, db DBTX, profileIDs []uuid.UUID) ([]domain.Season, error)
	ListFormations(ctx context.Context, db DBTX, profileIDs []uuid.UUID) ([]domain.Formation, error)
	ListInterests(ctx context.Context, db DBTX, profileIDs []uuid.UUID) ([]domain.Interest, error)
}
