// Package cv turns a loaded player aggregate into a renderer-agnostic CV
// document: a header bar, a left identity column and a right career column.
package cv

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// FlagPattern describes how flag bands are laid out.
type FlagPattern string

const (
	PatternVertical   FlagPattern = "vertical"
	PatternHorizontal FlagPattern = "horizontal"
	PatternSolid      FlagPattern = "solid"
	// PatternCross draws Bands[0] as background and Bands[1] as a centred cross.
	PatternCross FlagPattern = "cross"
)

// Flag is the header nationality flag.
type Flag struct {
	Country string
	Glyph   string
	Pattern FlagPattern
	Bands   []RGB
	Known   bool
}

// Document is the full layout-ready CV.
type Document struct {
	Header Header
	Left   LeftColumn
	Right  RightColumn
}

// Header is the black bar across the top of the page.
type Header struct {
	FirstName         string
	LastName          string
	Position          string
	SecondaryPosition string
	Flag              Flag
	// PhotoSrc is a data URI or remote URL, empty when the photo did not resolve.
	PhotoSrc string
	Accent   RGB
}

// FullName returns "First LAST".
func (h Header) FullName() string {
	return h.FirstName + " " + h.LastName
}

// InfoRow is a label/value line of the left column.
type InfoRow struct {
	Label string
	Value string
}

// LeftColumn holds identity, qualities and contact sections.
type LeftColumn struct {
	Profile   []InfoRow
	Qualities []string
	Contact   []InfoRow
	Agent     []InfoRow
}

// RightColumn holds the career, formation and interest sections.
type RightColumn struct {
	Seasons    []SeasonBlock
	Formations []FormationBlock
	Interests  []InterestBlock
}

// BadgeKind classifies season badges so renderers can colour them.
type BadgeKind string

const (
	BadgeState    BadgeKind = "state"
	BadgeCategory BadgeKind = "category"
	BadgeLevel    BadgeKind = "level"
	BadgeHonour   BadgeKind = "honour"
	BadgeWindow   BadgeKind = "window"
)

// Badge is a short tag shown next to a season.
type Badge struct {
	Kind  BadgeKind
	Label string
}

// Stat is a numeric card. Absent values produce no card.
type Stat struct {
	Label string
	Value string
}

// SeasonBlock is one career entry.
type SeasonBlock struct {
	Club     string
	Division string
	Period   string
	// ApproximatePeriod is set when Period was derived from the season rank.
	ApproximatePeriod bool
	Current           bool
	ClubLogoSrc       string
	DivisionLogoSrc   string
	Badges            []Badge
	Stats             []Stat
}

// FormationBlock is one training entry.
type FormationBlock struct {
	Period  string
	Title   string
	Details string
}

// InterestBlock is one club interest.
type InterestBlock struct {
	Club    string
	Year    string
	LogoSrc string
}
