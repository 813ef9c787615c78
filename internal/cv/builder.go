package cv

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/playercv/platform/internal/domain"
)

// ImageResolver maps a stored image reference to an embeddable source.
// ok is false when the reference cannot be resolved.
type ImageResolver interface {
	Resolve(ref string) (src string, ok bool)
}

// DefaultAccent is used when the profile colour cannot be parsed.
var DefaultAccent = RGB{200, 16, 46}

var regionalLevel = regexp.MustCompile(`Régional\s*(\d+)`)

// Builder derives Documents from profiles. Clock drives age and derived season
// windows; Images may be nil, in which case no image is embedded.
type Builder struct {
	Clock  clockwork.Clock
	Images ImageResolver
}

// NewBuilder creates a Builder.
func NewBuilder(clock clockwork.Clock, images ImageResolver) *Builder {
	return &Builder{Clock: clock, Images: images}
}

// Build lays out p. It never fails: unresolved images are left empty.
func (b *Builder) Build(p *domain.Profile) Document {
	now := b.now()

	header := Header{
		FirstName: p.FirstName,
		LastName:  upperFR(p.LastName),
		Position:  PositionLabel(p.PrimaryPosition),
		Accent:    ParseColor(p.CVColor),
		PhotoSrc:  b.image(p.PhotoPath),
	}
	if p.SecondaryPosition != nil && strings.TrimSpace(*p.SecondaryPosition) != "" {
		header.SecondaryPosition = PositionLabel(*p.SecondaryPosition)
	}
	if len(p.Nationalities) > 0 {
		header.Flag = FlagFor(p.Nationalities[0])
	} else {
		header.Flag = FlagFor("")
	}

	return Document{
		Header: header,
		Left: LeftColumn{
			Profile:   profileRows(&p.PlayerProfile, now),
			Qualities: qualityLabels(p.Qualities),
			Contact:   contactRows(&p.PlayerProfile),
			Agent:     agentRows(&p.PlayerProfile),
		},
		Right: RightColumn{
			Seasons:    b.seasons(p.Seasons, now.Year()),
			Formations: formations(p.Formations),
			Interests:  b.interests(p.Interests),
		},
	}
}

func (b *Builder) now() time.Time {
	if b.Clock == nil {
		return time.Now()
	}
	return b.Clock.Now()
}

func (b *Builder) image(ref string) string {
	if b.Images == nil || strings.TrimSpace(ref) == "" {
		return ""
	}
	src, ok := b.Images.Resolve(ref)
	if !ok {
		return ""
	}
	return src
}

func profileRows(p *domain.PlayerProfile, now time.Time) []InfoRow {
	var rows []InfoRow
	if birth, err := time.Parse(time.DateOnly, p.BirthDate); err == nil {
		rows = append(rows,
			InfoRow{"Âge", strconv.Itoa(Age(birth, now)) + " ans"},
			InfoRow{"Né le", birth.Format("02/01/2006")},
		)
	}
	if len(p.Nationalities) > 0 {
		label := "Nationalité"
		if len(p.Nationalities) > 1 {
			label = "Nationalités"
		}
		rows = append(rows, InfoRow{label, strings.Join(p.Nationalities, ", ")})
	}
	if p.SecondaryPosition != nil && strings.TrimSpace(*p.SecondaryPosition) != "" {
		rows = append(rows, InfoRow{"Poste secondaire", PositionLabel(*p.SecondaryPosition)})
	}
	rows = append(rows, InfoRow{"Pied fort", string(p.StrongFoot)})
	if p.HeightCm > 0 {
		rows = append(rows, InfoRow{"Taille", strconv.Itoa(p.HeightCm) + " cm"})
	}
	if p.IsGoalkeeper() && p.WingspanCm != nil {
		rows = append(rows, InfoRow{"Envergure", strconv.Itoa(*p.WingspanCm) + " cm"})
	}
	if p.VMA != nil {
		rows = append(rows, InfoRow{"VMA", FrenchDecimal(*p.VMA) + " km/h"})
	}
	return rows
}

func contactRows(p *domain.PlayerProfile) []InfoRow {
	rows := []InfoRow{
		{"E-mail", p.Email},
		{"Téléphone", p.Phone},
	}
	if p.TransfermarktURL != nil && *p.TransfermarktURL != "" {
		rows = append(rows, InfoRow{"Transfermarkt", *p.TransfermarktURL})
	}
	return rows
}

func agentRows(p *domain.PlayerProfile) []InfoRow {
	var rows []InfoRow
	if p.AgentEmail != nil && *p.AgentEmail != "" {
		rows = append(rows, InfoRow{"E-mail", *p.AgentEmail})
	}
	if p.AgentPhone != nil && *p.AgentPhone != "" {
		rows = append(rows, InfoRow{"Téléphone", *p.AgentPhone})
	}
	return rows
}

// qualityLabels lists qualities by descending order.
func qualityLabels(qs []domain.Quality) []string {
	sorted := slices.Clone(qs)
	slices.SortStableFunc(sorted, func(a, b domain.Quality) int {
		return cmp.Compare(b.Order, a.Order)
	})
	labels := make([]string, len(sorted))
	for i, q := range sorted {
		labels[i] = q.Label
	}
	return labels
}

func (b *Builder) seasons(seasons []domain.Season, year int) []SeasonBlock {
	// The rank in descending order drives the derived window. It is an
	// approximation: reordering seasons shifts the years.
	byOrder := slices.Clone(seasons)
	slices.SortStableFunc(byOrder, func(a, b domain.Season) int {
		return cmp.Compare(b.Order, a.Order)
	})

	blocks := make([]SeasonBlock, 0, len(seasons))
	type keyed struct {
		block  SeasonBlock
		order  int
		latest int
	}
	items := make([]keyed, 0, len(seasons))
	for i := range byOrder {
		s := &byOrder[i]
		block := SeasonBlock{
			Club:            s.Club,
			Division:        s.Division,
			Current:         s.IsCurrentSeason,
			ClubLogoSrc:     b.image(s.LogoClubPath),
			DivisionLogoSrc: b.image(s.LogoDivisionPath),
			Badges:          Badges(s),
			Stats:           Stats(s),
		}
		switch {
		case s.Period != nil && strings.TrimSpace(*s.Period) != "":
			block.Period = FormatPeriod(*s.Period)
		case s.IsCurrentSeason:
			block.Period = SeasonWindow(year, 0)
		default:
			block.Period = SeasonWindow(year, i)
			block.ApproximatePeriod = true
		}
		items = append(items, keyed{block: block, order: s.Order, latest: LatestYear(block.Period)})
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		if a.block.Current != b.block.Current {
			if a.block.Current {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(b.order, a.order); c != 0 {
			return c
		}
		return cmp.Compare(b.latest, a.latest)
	})
	for _, it := range items {
		blocks = append(blocks, it.block)
	}
	return blocks
}

// Badges derives the season tags: state first, then category, regional level,
// window and honours.
func Badges(s *domain.Season) []Badge {
	badges := make([]Badge, 0, 7)
	if s.IsCurrentSeason {
		badges = append(badges, Badge{BadgeState, "En cours"})
	} else {
		badges = append(badges, Badge{BadgeState, "Complète"})
	}
	if c := strings.TrimSpace(s.Category); c != "" {
		badges = append(badges, Badge{BadgeCategory, c})
	}
	if strings.Contains(s.Division, "Régional") {
		label := "R"
		if m := regionalLevel.FindStringSubmatch(s.Division); m != nil {
			label += m[1]
		}
		badges = append(badges, Badge{BadgeLevel, label})
	}
	if s.IsMidSeason {
		label := "Mi-saison"
		if s.PeriodType != nil {
			label += " " + string(*s.PeriodType)
		}
		badges = append(badges, Badge{BadgeWindow, label})
	}
	if s.OverAged {
		badges = append(badges, Badge{BadgeHonour, "Surclassé"})
	}
	if s.Captain {
		badges = append(badges, Badge{BadgeHonour, "Capitaine"})
	}
	if s.Champion {
		badges = append(badges, Badge{BadgeHonour, "Champion"})
	}
	if s.CupWon {
		badges = append(badges, Badge{BadgeHonour, "Coupe"})
	}
	return badges
}

// Stats surfaces only the numeric fields that are set.
func Stats(s *domain.Season) []Stat {
	var stats []Stat
	if s.Goals != nil {
		stats = append(stats, Stat{"Buts", strconv.Itoa(*s.Goals)})
	}
	if s.Assists != nil {
		stats = append(stats, Stat{"Passes D.", strconv.Itoa(*s.Assists)})
	}
	if s.AvgPlayingTimeMin != nil {
		stats = append(stats, Stat{"Temps moyen", strconv.Itoa(*s.AvgPlayingTimeMin) + "'"})
	}
	if s.Matches != nil {
		stats = append(stats, Stat{"Matchs", strconv.Itoa(*s.Matches)})
	}
	if s.CleanSheets != nil {
		stats = append(stats, Stat{"Clean sheets", strconv.Itoa(*s.CleanSheets)})
	}
	return stats
}

func formations(fs []domain.Formation) []FormationBlock {
	sorted := slices.Clone(fs)
	slices.SortStableFunc(sorted, func(a, b domain.Formation) int {
		if c := cmp.Compare(b.Order, a.Order); c != 0 {
			return c
		}
		return cmp.Compare(LatestYear(b.PeriodLabel), LatestYear(a.PeriodLabel))
	})
	blocks := make([]FormationBlock, len(sorted))
	for i, f := range sorted {
		blocks[i] = FormationBlock{
			Period: NormalizeSeparators(f.PeriodLabel),
			Title:  f.Title,
		}
		if f.Details != nil {
			blocks[i].Details = *f.Details
		}
	}
	return blocks
}

func (b *Builder) interests(is []domain.Interest) []InterestBlock {
	sorted := slices.Clone(is)
	slices.SortStableFunc(sorted, func(x, y domain.Interest) int {
		if c := cmp.Compare(y.Order, x.Order); c != 0 {
			return c
		}
		return cmp.Compare(LatestYear(y.Year), LatestYear(x.Year))
	})
	blocks := make([]InterestBlock, len(sorted))
	for i, it := range sorted {
		blocks[i] = InterestBlock{
			Club:    it.Club,
			Year:    it.Year,
			LogoSrc: b.image(it.LogoClubPath),
		}
	}
	return blocks
}

// Age returns completed years between birth and now.
func Age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// FrenchDecimal formats v with a decimal comma.
func FrenchDecimal(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1)
}

// ParseColor parses #RGB or #RRGGBB, falling back to DefaultAccent.
func ParseColor(hex string) RGB {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return DefaultAccent
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return DefaultAccent
	}
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}
}
