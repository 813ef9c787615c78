package domain

import (
	"bytes"
	"encoding/json"
)

// QualityInput is one submitted quality. It accepts either a bare JSON string
// or an object with label and optional order.
type QualityInput struct {
	Label string `json:"label"`
	Order *int   `json:"order,omitempty"`
}

func (q *QualityInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &q.Label)
	}
	type plain QualityInput
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*q = QualityInput(p)
	return nil
}

// SeasonInput is one submitted season.
type SeasonInput struct {
	Club              string      `json:"club"`
	Category          string      `json:"category"`
	Division          string      `json:"division"`
	Period            *string     `json:"period,omitempty"`
	IsMidSeason       bool        `json:"isMidSeason"`
	PeriodType        *PeriodType `json:"periodType,omitempty"`
	LogoClubPath      string      `json:"logoClubPath"`
	LogoDivisionPath  string      `json:"logoDivisionPath"`
	Captain           bool        `json:"captain"`
	OverAged          bool        `json:"overAged"`
	Champion          bool        `json:"champion"`
	CupWon            bool        `json:"cupWon"`
	Matches           *int        `json:"matches,omitempty"`
	Goals             *int        `json:"goals,omitempty"`
	Assists           *int        `json:"assists,omitempty"`
	AvgPlayingTimeMin *int        `json:"avgPlayingTimeMin,omitempty"`
	CleanSheets       *int        `json:"cleanSheets,omitempty"`
	IsCurrentSeason   bool        `json:"isCurrentSeason"`
	Order             *int        `json:"order,omitempty"`
}

// FormationInput is one submitted formation entry.
type FormationInput struct {
	PeriodLabel string          `json:"periodLabel"`
	Title       string          `json:"title"`
	Details     json.RawMessage `json:"details,omitempty"`
	Order       *int            `json:"order,omitempty"`
}

// DetailsText returns the details string. ok is false when details is present
// but not a JSON string.
func (f FormationInput) DetailsText() (text *string, ok bool) {
	raw := bytes.TrimSpace(f.Details)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return &s, true
}

// InterestInput is one submitted club interest.
type InterestInput struct {
	Club         string `json:"club"`
	Year         string `json:"year"`
	LogoClubPath string `json:"logoClubPath"`
	Order        *int   `json:"order,omitempty"`
}

// ProfileInput is the create payload.
type ProfileInput struct {
	LastName          string           `json:"lastName"`
	FirstName         string           `json:"firstName"`
	Nationalities     []string         `json:"nationalities"`
	BirthDate         string           `json:"birthDate"`
	StrongFoot        StrongFoot       `json:"strongFoot"`
	HeightCm          *int             `json:"heightCm"`
	WingspanCm        *int             `json:"wingspanCm,omitempty"`
	VMA               *float64         `json:"vma,omitempty"`
	CVColor           string           `json:"cvColor"`
	PrimaryPosition   string           `json:"primaryPosition"`
	SecondaryPosition *string          `json:"secondaryPosition,omitempty"`
	TransfermarktURL  *string          `json:"transfermarktUrl,omitempty"`
	PhotoPath         string           `json:"photoPath"`
	Email             string           `json:"email"`
	Phone             string           `json:"phone"`
	AgentEmail        *string          `json:"agentEmail,omitempty"`
	AgentPhone        *string          `json:"agentPhone,omitempty"`
	Qualities         []QualityInput   `json:"qualities"`
	Seasons           []SeasonInput    `json:"seasons"`
	Formations        []FormationInput `json:"formations"`
	Interests         []InterestInput  `json:"interests"`
}

// ProfilePatch is the partial update payload. Only present fields are written;
// each present child collection fully replaces the stored one.
type ProfilePatch struct {
	LastName          Optional[string]        `json:"lastName"`
	FirstName         Optional[string]        `json:"firstName"`
	Nationalities     Optional[[]string]      `json:"nationalities"`
	BirthDate         Optional[string]        `json:"birthDate"`
	StrongFoot        Optional[StrongFoot]    `json:"strongFoot"`
	HeightCm          Optional[int]           `json:"heightCm"`
	WingspanCm        Optional[int]           `json:"wingspanCm"`
	VMA               Optional[float64]       `json:"vma"`
	CVColor           Optional[string]        `json:"cvColor"`
	PrimaryPosition   Optional[string]        `json:"primaryPosition"`
	SecondaryPosition Optional[string]        `json:"secondaryPosition"`
	TransfermarktURL  Optional[string]        `json:"transfermarktUrl"`
	PhotoPath         Optional[string]        `json:"photoPath"`
	Email             Optional[string]        `json:"email"`
	Phone             Optional[string]        `json:"phone"`
	AgentEmail        Optional[string]        `json:"agentEmail"`
	AgentPhone        Optional[string]        `json:"agentPhone"`
	Status            Optional[ProfileStatus] `json:"status"`
	Archived          Optional[bool]          `json:"archived"`

	Qualities  *[]QualityInput   `json:"qualities"`
	Seasons    *[]SeasonInput    `json:"seasons"`
	Formations *[]FormationInput `json:"formations"`
	Interests  *[]InterestInput  `json:"interests"`
}

// HasScalars reports whether any parent column is present.
func (p ProfilePatch) HasScalars() bool {
	return p.LastName.Set || p.FirstName.Set || p.Nationalities.Set || p.BirthDate.Set ||
		p.StrongFoot.Set || p.HeightCm.Set || p.WingspanCm.Set || p.VMA.Set ||
		p.CVColor.Set || p.PrimaryPosition.Set || p.SecondaryPosition.Set ||
		p.TransfermarktURL.Set || p.PhotoPath.Set || p.Email.Set || p.Phone.Set ||
		p.AgentEmail.Set || p.AgentPhone.Set || p.Status.Set || p.Archived.Set
}

// HasChildren reports whether any child collection is present.
func (p ProfilePatch) HasChildren() bool {
	return p.Qualities != nil || p.Seasons != nil || p.Formations != nil || p.Interests != nil
}

// IsEmpty reports whether the patch carries nothing to update.
func (p ProfilePatch) IsEmpty() bool {
	return !p.HasScalars() && !p.HasChildren()
}
