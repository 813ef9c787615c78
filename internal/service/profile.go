package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playercv/platform/internal/domain"
	"github.com/playercv/platform/internal/repository"
)

// ProfileService owns the transactional read/write model of the player aggregate.
type ProfileService struct {
	pool     *pgxpool.Pool
	profiles repository.ProfileRepository
	children repository.ChildRepository
	logger   *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(
	pool *pgxpool.Pool,
	profiles repository.ProfileRepository,
	children repository.ChildRepository,
	logger *slog.Logger,
) *ProfileService {
	return &ProfileService{
		pool:     pool,
		profiles: profiles,
		children: children,
		logger:   logger,
	}
}

// Create validates the payload and persists parent and children in one transaction.
func (s *ProfileService) Create(ctx context.Context, in domain.ProfileInput) (*domain.Profile, error) {
	if err := domain.ValidateProfileInput(in); err != nil {
		return nil, err
	}
	id, err := s.insert(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("profile created", "profile_id", id, "seasons", len(in.Seasons), "qualities", len(in.Qualities))
	return s.Get(ctx, id)
}

// Duplicate copies an aggregate into a new one. The copy starts unprocessed and unarchived.
func (s *ProfileService) Duplicate(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	newID, err := s.insert(ctx, src.Input())
	if err != nil {
		return nil, err
	}
	s.logger.Info("profile duplicated", "source_id", id, "profile_id", newID)
	return s.Get(ctx, newID)
}

func (s *ProfileService) insert(ctx context.Context, in domain.ProfileInput) (uuid.UUID, error) {
	p := newPlayerProfile(in)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, domain.ErrStorage("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.profiles.Insert(ctx, tx, p); err != nil {
		return uuid.Nil, domain.ErrStorage("create profile", err)
	}
	if err := s.replaceChildren(ctx, tx, p.ID, &in.Qualities, &in.Seasons, &in.Formations, &in.Interests); err != nil {
		return uuid.Nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, domain.ErrStorage("commit", err)
	}
	return p.ID, nil
}

// Get loads the full aggregate with its four collections.
func (s *ProfileService) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, err := s.profiles.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrStorage("find profile", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound("profil", id.String())
	}

	ids := []uuid.UUID{id}
	agg := &domain.Profile{PlayerProfile: *p}
	if agg.Qualities, err = s.children.ListQualities(ctx, s.pool, ids); err != nil {
		return nil, domain.ErrStorage("load qualities", err)
	}
	if agg.Seasons, err = s.children.ListSeasons(ctx, s.pool, ids); err != nil {
		return nil, domain.ErrStorage("load seasons", err)
	}
	if agg.Formations, err = s.children.ListFormations(ctx, s.pool, ids); err != nil {
		return nil, domain.ErrStorage("load formations", err)
	}
	if agg.Interests, err = s.children.ListInterests(ctx, s.pool, ids); err != nil {
		return nil, domain.ErrStorage("load interests", err)
	}
	return agg, nil
}

// List returns the light form of every matching profile, newest first.
func (s *ProfileService) List(ctx context.Context, filter domain.ListFilter) ([]domain.ProfileListItem, error) {
	profiles, err := s.profiles.List(ctx, s.pool, filter)
	if err != nil {
		return nil, domain.ErrStorage("list profiles", err)
	}
	items := make([]domain.ProfileListItem, 0, len(profiles))
	if len(profiles) == 0 {
		return items, nil
	}

	ids := make([]uuid.UUID, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}
	qualities, err := s.children.ListQualities(ctx, s.pool, ids)
	if err != nil {
		return nil, domain.ErrStorage("load qualities", err)
	}
	seasons, err := s.children.ListSeasons(ctx, s.pool, ids)
	if err != nil {
		return nil, domain.ErrStorage("load seasons", err)
	}

	qualitiesBy := make(map[uuid.UUID][]domain.Quality, len(profiles))
	for _, q := range qualities {
		qualitiesBy[q.ProfileID] = append(qualitiesBy[q.ProfileID], q)
	}
	seasonsBy := make(map[uuid.UUID][]domain.Season, len(profiles))
	for _, se := range seasons {
		seasonsBy[se.ProfileID] = append(seasonsBy[se.ProfileID], se)
	}

	for _, p := range profiles {
		item := domain.ProfileListItem{
			PlayerProfile: p,
			Qualities:     qualitiesBy[p.ID],
			Seasons:       seasonsBy[p.ID],
		}
		if item.Qualities == nil {
			item.Qualities = []domain.Quality{}
		}
		if item.Seasons == nil {
			item.Seasons = []domain.Season{}
		}
		items = append(items, item)
	}
	return items, nil
}

// Update applies a partial update. Present child collections are fully replaced;
// everything happens in one transaction.
func (s *ProfileService) Update(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (*domain.Profile, error) {
	if err := domain.ValidateProfilePatch(patch); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrStorage("begin tx", err)
	}
	defer tx.Rollback(ctx)

	var found bool
	if patch.HasScalars() {
		found, err = s.profiles.Update(ctx, tx, id, patch)
	} else {
		found, err = s.profiles.Touch(ctx, tx, id)
	}
	if err != nil {
		return nil, domain.ErrStorage("update profile", err)
	}
	if !found {
		return nil, domain.ErrNotFound("profil", id.String())
	}

	if err := s.replaceChildren(ctx, tx, id, patch.Qualities, patch.Seasons, patch.Formations, patch.Interests); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrStorage("commit", err)
	}

	s.logger.Info("profile updated", "profile_id", id, "scalars", patch.HasScalars(), "children", patch.HasChildren())
	return s.Get(ctx, id)
}

// Delete removes a profile and, by cascade, all of its children.
func (s *ProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.profiles.Delete(ctx, s.pool, id)
	if err != nil {
		return domain.ErrStorage("delete profile", err)
	}
	if !found {
		return domain.ErrNotFound("profil", id.String())
	}
	s.logger.Info("profile deleted", "profile_id", id)
	return nil
}

// replaceChildren full-replaces each non-nil collection.
func (s *ProfileService) replaceChildren(
	ctx context.Context,
	tx pgx.Tx,
	id uuid.UUID,
	qualities *[]domain.QualityInput,
	seasons *[]domain.SeasonInput,
	formations *[]domain.FormationInput,
	interests *[]domain.InterestInput,
) error {
	if qualities != nil {
		if err := s.children.ReplaceQualities(ctx, tx, id, *qualities); err != nil {
			return domain.ErrStorage("save qualities", err)
		}
	}
	if seasons != nil {
		if err := s.children.ReplaceSeasons(ctx, tx, id, *seasons); err != nil {
			return domain.ErrStorage("save seasons", err)
		}
	}
	if formations != nil {
		if err := s.children.ReplaceFormations(ctx, tx, id, *formations); err != nil {
			return domain.ErrStorage("save formations", err)
		}
	}
	if interests != nil {
		if err := s.children.ReplaceInterests(ctx, tx, id, *interests); err != nil {
			return domain.ErrStorage("save interests", err)
		}
	}
	return nil
}

func newPlayerProfile(in domain.ProfileInput) *domain.PlayerProfile {
	p := &domain.PlayerProfile{
		ID:                uuid.New(),
		LastName:          strings.TrimSpace(in.LastName),
		FirstName:         strings.TrimSpace(in.FirstName),
		Nationalities:     trimAll(in.Nationalities),
		BirthDate:         in.BirthDate,
		StrongFoot:        in.StrongFoot,
		WingspanCm:        in.WingspanCm,
		VMA:               in.VMA,
		CVColor:           in.CVColor,
		PrimaryPosition:   in.PrimaryPosition,
		SecondaryPosition: optionalText(in.SecondaryPosition),
		TransfermarktURL:  optionalText(in.TransfermarktURL),
		PhotoPath:         in.PhotoPath,
		Email:             strings.TrimSpace(in.Email),
		Phone:             strings.TrimSpace(in.Phone),
		AgentEmail:        optionalText(in.AgentEmail),
		AgentPhone:        optionalText(in.AgentPhone),
		Status:            domain.StatusPending,
	}
	if in.HeightCm != nil {
		p.HeightCm = *in.HeightCm
	}
	return p
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func trimAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
