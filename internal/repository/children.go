package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/playercv/platform/internal/domain"
)

type childRepo struct{}

// NewChildRepository returns a pgx-backed ChildRepository.
func NewChildRepository() ChildRepository {
	return &childRepo{}
}

func (r *childRepo) ReplaceQualities(ctx context.Context, db DBTX, profileID uuid.UUID, items []domain.QualityInput) error {
	if err := deleteChildren(ctx, db, "profile_qualities", profileID); err != nil {
		return err
	}
	batch := &pgx.Batch{}
	for i, q := range items {
		batch.Queue(`INSERT INTO profile_qualities (id, profile_id, label, sort_order) VALUES ($1, $2, $3, $4)`,
			uuid.New(), profileID, strings.TrimSpace(q.Label), orderOf(q.Order, i))
	}
	return sendBatch(ctx, db, batch, "insert qualities")
}

func (r *childRepo) ReplaceSeasons(ctx context.Context, db DBTX, profileID uuid.UUID, items []domain.SeasonInput) error {
	if err := deleteChildren(ctx, db, "profile_seasons", profileID); err != nil {
		return err
	}
	batch := &pgx.Batch{}
	for i, s := range items {
		var periodType *string
		if s.IsMidSeason && s.PeriodType != nil {
			pt := string(*s.PeriodType)
			periodType = &pt
		}
		batch.Queue(`
			INSERT INTO profile_seasons
			  (id, profile_id, club, category, division, period, is_mid_season, period_type,
			   logo_club_path, logo_division_path, captain, over_aged, champion, cup_won,
			   matches, goals, assists, avg_playing_time_min, clean_sheets, is_current_season, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
			uuid.New(), profileID, strings.TrimSpace(s.Club), strings.TrimSpace(s.Category), s.Division,
			nullIfBlank(s.Period), flag(s.IsMidSeason), periodType,
			s.LogoClubPath, s.LogoDivisionPath,
			flag(s.Captain), flag(s.OverAged), flag(s.Champion), flag(s.CupWon),
			s.Matches, s.Goals, s.Assists, s.AvgPlayingTimeMin, s.CleanSheets,
			flag(s.IsCurrentSeason), orderOf(s.Order, i))
	}
	return sendBatch(ctx, db, batch, "insert seasons")
}

func (r *childRepo) ReplaceFormations(ctx context.Context, db DBTX, profileID uuid.UUID, items []domain.FormationInput) error {
	if err := deleteChildren(ctx, db, "profile_formations", profileID); err != nil {
		return err
	}
	batch := &pgx.Batch{}
	for i, f := range items {
		details, _ := f.DetailsText()
		batch.Queue(`INSERT INTO profile_formations (id, profile_id, period_label, title, details, sort_order) VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), profileID, strings.TrimSpace(f.PeriodLabel), strings.TrimSpace(f.Title), nullIfBlank(details), orderOf(f.Order, i))
	}
	return sendBatch(ctx, db, batch, "insert formations")
}

func (r *childRepo) ReplaceInterests(ctx context.Context, db DBTX, profileID uuid.UUID, items []domain.InterestInput) error {
	if err := deleteChildren(ctx, db, "profile_interests", profileID); err != nil {
		return err
	}
	batch := &pgx.Batch{}
	for i, it := range items {
		batch.Queue(`INSERT INTO profile_interests (id, profile_id, club, year, logo_club_path, sort_order) VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), profileID, strings.TrimSpace(it.Club), strings.TrimSpace(it.Year), it.LogoClubPath, orderOf(it.Order, i))
	}
	return sendBatch(ctx, db, batch, "insert interests")
}

func (r *childRepo) ListQualities(ctx context.Context, db DBTX, profileIDs []uuid.UUID) ([]domain.Quality, error) {
	rows, err := db.Query(ctx, `
		SELECT id, profile_id, label, sort_order, created_at
		FROM profile_qualities WHERE profile_id = ANY($1)
		ORDER BY sort_order ASC, created_at ASC`, profileIDs)
	if err != nil {
		return nil, fmt.Errorf("list qualities: %w", err)
	}
	defer rows.Close()

	result := []domain.Quality{}
	for rows.Next() {
		var q domain.Quality
		if err := rows.Scan(&q.ID, &q.ProfileID, &q.Label, &q.Order, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quality: %w", err)
		}
		result = append(result, q)
	}
	return result, rows.Err()
}

func (r *childRepo) ListSeasons(ctx context.Context, db DBTX, profileIDs []uuid.UUID) ([]domain.Season, error) {
	rows, err := db.Query(ctx, `
		SELECT id, profile_id, club, category, division, period, is_mid_season, period_type,
		       logo_club_path, logo_division_path, captain, over_aged, champion, cup_won,
		       matches, goals, assists, avg_playing_time_min, clean_sheets, is_current_season,
		       sort_order, created_at
		FROM profile_seasons WHERE profile_id = ANY($1)
		ORDER BY sort_order ASC, created_at ASC`, profileIDs)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	defer rows.Close()

	result := []domain.Season{}
	for rows.Next() {
		var s domain.Season
		var midSeason, captain, overAged, champion, cupWon, current int16
		var periodType *string
		err := rows.Scan(
			&s.ID, &s.ProfileID, &s.Club, &s.Category, &s.Division, &s.Period, &midSeason, &periodType,
			&s.LogoClubPath, &s.LogoDivisionPath, &captain, &overAged, &champion, &cupWon,
			&s.Matches, &s.Goals, &s.Assists, &s.AvgPlayingTimeMin, &s.CleanSheets, &current,
			&s.Order, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		s.IsMidSeason = isSet(midSeason)
		s.Captain = isSet(captain)
		s.OverAged = isSet(overAged)
		s.Champion = isSet(champion)
		s.CupWon = isSet(cupWon)
		s.IsCurrentSeason = isSet(current)
		if periodType != nil {
			pt := domain.PeriodType(*periodType)
			s.PeriodType = &pt
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *childRepo) ListFormations(ctx context.Context, db DBTX, profileIDs []uuid.UUID) ([]domain.Formation, error) {
	rows, err := db.Query(ctx, `
		SELECT id, profile_id, period_label, title, details, sort_order, created_at
		FROM profile_formations WHERE profile_id = ANY($1)
		ORDER BY sort_order ASC, created_at ASC`, profileIDs)
	if err != nil {
		return nil, fmt.Errorf("list formations: %w", err)
	}
	defer rows.Close()

	result := []domain.Formation{}
	for rows.Next() {
		var f domain.Formation
		if err := rows.Scan(&f.ID, &f.ProfileID, &f.PeriodLabel, &f.Title, &f.Details, &f.Order, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan formation: %w", err)
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

func (r *childRepo) ListInterests(ctx context.Context, db DBTX, profileIDs []uuid.UUID) ([]domain.Interest, error) {
	rows, err := db.Query(ctx, `
		SELECT id, profile_id, club, year, logo_club_path, sort_order, created_at
		FROM profile_interests WHERE profile_id = ANY($1)
		ORDER BY sort_order ASC, created_at ASC`, profileIDs)
	if err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	defer rows.Close()

	result := []domain.Interest{}
	for rows.Next() {
		var it domain.Interest
		if err := rows.Scan(&it.ID, &it.ProfileID, &it.Club, &it.Year, &it.LogoClubPath, &it.Order, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interest: %w", err)
		}
		result = append(result, it)
	}
	return result, rows.Err()
}

// deleteChildren removes every row of table owned by profileID. table is always a constant.
func deleteChildren(ctx context.Context, db DBTX, table string, profileID uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM `+table+` WHERE profile_id = $1`, profileID); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

func sendBatch(ctx context.Context, db DBTX, batch *pgx.Batch, op string) error {
	if batch.Len() == 0 {
		return nil
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
