package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlayerProfile is a player_profiles row, the aggregate root.
type PlayerProfile struct {
	ID                uuid.UUID     `json:"id"`
	LastName          string        `json:"lastName"`
	FirstName         string        `json:"firstName"`
	Nationalities     []string      `json:"nationalities"`
	BirthDate         string        `json:"birthDate"`
	StrongFoot        StrongFoot    `json:"strongFoot"`
	HeightCm          int           `json:"heightCm"`
	WingspanCm        *int          `json:"wingspanCm"`
	VMA               *float64      `json:"vma"`
	CVColor           string        `json:"cvColor"`
	PrimaryPosition   string        `json:"primaryPosition"`
	SecondaryPosition *string       `json:"secondaryPosition"`
	TransfermarktURL  *string       `json:"transfermarktUrl"`
	PhotoPath         string        `json:"photoPath"`
	Email             string        `json:"email"`
	Phone             string        `json:"phone"`
	AgentEmail        *string       `json:"agentEmail"`
	AgentPhone        *string       `json:"agentPhone"`
	Status            ProfileStatus `json:"status"`
	Archived          bool          `json:"archived"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// Quality is a profile_qualities row.
type Quality struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profileId"`
	Label     string    `json:"label"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

// Season is a profile_seasons row: one club season of the player's career.
type Season struct {
	ID                uuid.UUID   `json:"id"`
	ProfileID         uuid.UUID   `json:"profileId"`
	Club              string      `json:"club"`
	Category          string      `json:"category"`
	Division          string      `json:"division"`
	Period            *string     `json:"period"`
	IsMidSeason       bool        `json:"isMidSeason"`
	PeriodType        *PeriodType `json:"periodType"`
	LogoClubPath      string      `json:"logoClubPath"`
	LogoDivisionPath  string      `json:"logoDivisionPath"`
	Captain           bool        `json:"captain"`
	OverAged          bool        `json:"overAged"`
	Champion          bool        `json:"champion"`
	CupWon            bool        `json:"cupWon"`
	Matches           *int        `json:"matches"`
	Goals             *int        `json:"goals"`
	Assists           *int        `json:"assists"`
	AvgPlayingTimeMin *int        `json:"avgPlayingTimeMin"`
	CleanSheets       *int        `json:"cleanSheets"`
	IsCurrentSeason   bool        `json:"isCurrentSeason"`
	Order             int         `json:"order"`
	CreatedAt         time.Time   `json:"createdAt"`
}

// Formation is a profile_formations row (training centre, academy, diploma).
type Formation struct {
	ID          uuid.UUID `json:"id"`
	ProfileID   uuid.UUID `json:"profileId"`
	PeriodLabel string    `json:"periodLabel"`
	Title       string    `json:"title"`
	Details     *string   `json:"details"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Interest is a profile_interests row: a club that showed interest in the player.
type Interest struct {
	ID           uuid.UUID `json:"id"`
	ProfileID    uuid.UUID `json:"profileId"`
	Club         string    `json:"club"`
	Year         string    `json:"year"`
	LogoClubPath string    `json:"logoClubPath"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the fully loaded aggregate.
type Profile struct {
	PlayerProfile
	Qualities  []Quality   `json:"qualities"`
	Seasons    []Season    `json:"seasons"`
	Formations []Formation `json:"formations"`
	Interests  []Interest  `json:"interests"`
}

// ProfileListItem is the lighter list form: formations and interests are not loaded.
type ProfileListItem struct {
	PlayerProfile
	Qualities []Quality `json:"qualities"`
	Seasons   []Season  `json:"seasons"`
}

// ListFilter narrows ListProfiles. Zero value lists everything.
type ListFilter struct {
	Status   *ProfileStatus
	Archived *bool
	Query    string
}

// DocumentFileName returns the download name of a profile's CV.
func (p *PlayerProfile) DocumentFileName(ext string) string {
	return "CV_" + p.FirstName + "_" + p.LastName + "." + ext
}

// IsGoalkeeper reports whether either position is the goalkeeper code.
func (p *PlayerProfile) IsGoalkeeper() bool {
	if p.PrimaryPosition == PositionGoalkeeper {
		return true
	}
	return p.SecondaryPosition != nil && *p.SecondaryPosition == PositionGoalkeeper
}
