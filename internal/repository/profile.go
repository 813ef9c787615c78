package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/playercv/platform/internal/domain"
)

const profileColumns = `id, last_name, first_name, nationalities, birth_date, strong_foot,
	height_cm, wingspan_cm, vma, cv_color, primary_position, secondary_position,
	transfermarkt_url, photo_path, email, phone, agent_email, agent_phone,
	status, archived, created_at, updated_at`

type profileRepo struct{}

// NewProfileRepository returns a pgx-backed ProfileRepository.
func NewProfileRepository() ProfileRepository {
	return &profileRepo{}
}

func (r *profileRepo) Insert(ctx context.Context, db DBTX, p *domain.PlayerProfile) error {
	if p.Status == "" {
		p.Status = domain.StatusPending
	}
	err := db.QueryRow(ctx, `
		INSERT INTO player_profiles
		  (id, last_name, first_name, nationalities, birth_date, strong_foot,
		   height_cm, wingspan_cm, vma, cv_color, primary_position, secondary_position,
		   transfermarkt_url, photo_path, email, phone, agent_email, agent_phone,
		   status, archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING created_at, updated_at`,
		p.ID, p.LastName, p.FirstName, domain.EncodeNationalities(p.Nationalities), p.BirthDate, string(p.StrongFoot),
		p.HeightCm, p.WingspanCm, p.VMA, p.CVColor, p.PrimaryPosition, p.SecondaryPosition,
		p.TransfermarktURL, p.PhotoPath, p.Email, p.Phone, p.AgentEmail, p.AgentPhone,
		string(p.Status), flag(p.Archived),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *profileRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.PlayerProfile, error) {
	row := db.QueryRow(ctx, `SELECT `+profileColumns+` FROM player_profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepo) List(ctx context.Context, db DBTX, filter domain.ListFilter) ([]domain.PlayerProfile, error) {
	where := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil {
		where = append(where, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, string(*filter.Status))
		argIdx++
	}
	if filter.Archived != nil {
		where = append(where, fmt.Sprintf("p.archived = $%d", argIdx))
		args = append(args, flag(*filter.Archived))
		argIdx++
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		where = append(where, fmt.Sprintf(`(p.first_name ILIKE '%%' || $%[1]d || '%%'
			OR p.last_name ILIKE '%%' || $%[1]d || '%%'
			OR EXISTS (SELECT 1 FROM profile_seasons s WHERE s.profile_id = p.id AND s.club ILIKE '%%' || $%[1]d || '%%'))`, argIdx))
		args = append(args, q)
	}

	query := fmt.Sprintf(`SELECT %s FROM player_profiles p WHERE %s ORDER BY p.created_at DESC, p.id`,
		prefixed(profileColumns, "p."), strings.Join(where, " AND "))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var result []domain.PlayerProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

// Update builds the SET clause from the present fields only (updated_at is always bumped).
func (r *profileRepo) Update(ctx context.Context, db DBTX, id uuid.UUID, patch domain.ProfilePatch) (bool, error) {
	setClauses := []string{"updated_at = now()"}
	args := []interface{}{}
	argIdx := 1

	set := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if patch.LastName.Set {
		set("last_name", strings.TrimSpace(patch.LastName.Value))
	}
	if patch.FirstName.Set {
		set("first_name", strings.TrimSpace(patch.FirstName.Value))
	}
	if patch.Nationalities.Set {
		set("nationalities", domain.EncodeNationalities(patch.Nationalities.Value))
	}
	if patch.BirthDate.Set {
		set("birth_date", patch.BirthDate.Value)
	}
	if patch.StrongFoot.Set {
		set("strong_foot", string(patch.StrongFoot.Value))
	}
	if patch.HeightCm.Set {
		set("height_cm", patch.HeightCm.Value)
	}
	if patch.WingspanCm.Set {
		set("wingspan_cm", patch.WingspanCm.Ptr())
	}
	if patch.VMA.Set {
		set("vma", patch.VMA.Ptr())
	}
	if patch.CVColor.Set {
		set("cv_color", patch.CVColor.Value)
	}
	if patch.PrimaryPosition.Set {
		set("primary_position", patch.PrimaryPosition.Value)
	}
	if patch.SecondaryPosition.Set {
		set("secondary_position", nullIfBlank(patch.SecondaryPosition.Ptr()))
	}
	if patch.TransfermarktURL.Set {
		set("transfermarkt_url", nullIfBlank(patch.TransfermarktURL.Ptr()))
	}
	if patch.PhotoPath.Set {
		set("photo_path", patch.PhotoPath.Value)
	}
	if patch.Email.Set {
		set("email", strings.TrimSpace(patch.Email.Value))
	}
	if patch.Phone.Set {
		set("phone", strings.TrimSpace(patch.Phone.Value))
	}
	if patch.AgentEmail.Set {
		set("agent_email", nullIfBlank(patch.AgentEmail.Ptr()))
	}
	if patch.AgentPhone.Set {
		set("agent_phone", nullIfBlank(patch.AgentPhone.Ptr()))
	}
	if patch.Status.Set {
		set("status", string(patch.Status.Value))
	}
	if patch.Archived.Set {
		set("archived", flag(patch.Archived.Value))
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE player_profiles SET %s WHERE id = $%d RETURNING id`,
		strings.Join(setClauses, ", "), argIdx)

	var updated uuid.UUID
	err := db.QueryRow(ctx, query, args...).Scan(&updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update profile: %w", err)
	}
	return true, nil
}

func (r *profileRepo) Touch(ctx context.Context, db DBTX, id uuid.UUID) (bool, error) {
	tag, err := db.Exec(ctx, `UPDATE player_profiles SET updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("touch profile: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *profileRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) (bool, error) {
	tag, err := db.Exec(ctx, `DELETE FROM player_profiles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete profile: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanProfile(row pgx.Row) (*domain.PlayerProfile, error) {
	var p domain.PlayerProfile
	var nationalities, strongFoot, status string
	var archived int16
	err := row.Scan(
		&p.ID, &p.LastName, &p.FirstName, &nationalities, &p.BirthDate, &strongFoot,
		&p.HeightCm, &p.WingspanCm, &p.VMA, &p.CVColor, &p.PrimaryPosition, &p.SecondaryPosition,
		&p.TransfermarktURL, &p.PhotoPath, &p.Email, &p.Phone, &p.AgentEmail, &p.AgentPhone,
		&status, &archived, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	p.Nationalities = domain.DecodeNationalities(nationalities)
	p.StrongFoot = domain.StrongFoot(strongFoot)
	p.Status = domain.ProfileStatus(status)
	p.Archived = isSet(archived)
	return &p, nil
}

func nullIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// prefixed qualifies every column of a comma-separated list with prefix.
func prefixed(columns, prefix string) string {
	parts := strings.Split(columns, ",")
	for i, c := range parts {
		parts[i] = prefix + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}
