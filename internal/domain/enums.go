package domain

// StrongFoot is the player's preferred foot.
type StrongFoot string

const (
	FootRight      StrongFoot = "Droit"
	FootLeft       StrongFoot = "Gauche"
	FootAmbidexter StrongFoot = "Ambidextre"
)

// Valid reports whether f is one of the accepted literals.
func (f StrongFoot) Valid() bool {
	switch f {
	case FootRight, FootLeft, FootAmbidexter:
		return true
	}
	return false
}

// ProfileStatus is the staff workflow marker of a profile.
type ProfileStatus string

const (
	StatusPending ProfileStatus = "À traiter"
	StatusDone    ProfileStatus = "Traité"
)

func (s ProfileStatus) Valid() bool {
	return s == StatusPending || s == StatusDone
}

// PeriodType tells which half of a football season a mid-season record covers.
type PeriodType string

const (
	PeriodWinter PeriodType = "Hiver"
	PeriodSummer PeriodType = "Été"
)

func (p PeriodType) Valid() bool {
	return p == PeriodWinter || p == PeriodSummer
}

// DivisionOther is the catch-all division.
const DivisionOther = "Autre"

// Divisions is the fixed list of accepted season divisions, mirrored by the
// CHECK constraint on profile_seasons.division.
var Divisions = []string{
	"Ligue 1",
	"Ligue 2",
	"National",
	"National 2",
	"National 3",
	"Régional 1",
	"Régional 2",
	"Régional 3",
	"Départemental 1",
	"Départemental 2",
	"Départemental 3",
	DivisionOther,
}

// ValidDivision reports whether d is a member of Divisions.
func ValidDivision(d string) bool {
	for _, known := range Divisions {
		if d == known {
			return true
		}
	}
	return false
}

// Goalkeeper position code; wingspan is only meaningful for it.
const PositionGoalkeeper = "GB"
