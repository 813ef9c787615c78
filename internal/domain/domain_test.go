package domain

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func validInput() ProfileInput {
	return ProfileInput{
		LastName:        "Martin",
		FirstName:       "Leo",
		Nationalities:   []string{"France"},
		BirthDate:       "2008-04-12",
		StrongFoot:      FootRight,
		HeightCm:        intPtr(178),
		CVColor:         "#C8102E",
		PrimaryPosition: "MC",
		PhotoPath:       "photos/leo.jpg",
		Email:           "leo@example.com",
		Phone:           "+33612345678",
		Qualities:       []QualityInput{{Label: "Vitesse"}},
		Seasons: []SeasonInput{{
			Club:             "FC Test",
			Category:         "U17",
			Division:         "Ligue 1",
			LogoClubPath:     "logos/fc-test.png",
			LogoDivisionPath: "logos/ligue1.png",
			Matches:          intPtr(20),
		}},
	}
}

// --- Validator Tests ---

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "user@example.com", false},
		{"valid with plus", "user+tag@example.co.uk", false},
		{"single char tld", "user@example.c", false},
		{"empty", "", true},
		{"no at sign", "abc", true},
		{"no domain dot", "user@example", true},
		{"space", "user @example.com", true},
		{"double at", "user@@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"international", "+33612345678", false},
		{"national trunk prefix", "0612345678", false},
		{"internal whitespace", "+33 6 12 34 56 78", false},
		{"no plus", "33612345678", false},
		{"letters", "abc", true},
		{"empty", "", true},
		{"leading zero international", "+0612345678", true},
		{"too long", "+1234567890123456", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.phone)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateAbsoluteURL(t *testing.T) {
	require.NoError(t, ValidateAbsoluteURL("https://www.transfermarkt.fr/leo-martin/profil/spieler/1"))
	require.Error(t, ValidateAbsoluteURL("transfermarkt.fr/leo"))
	require.Error(t, ValidateAbsoluteURL("https://"))
}

// --- Profile Validation Tests ---

func TestValidateProfileInput_Valid(t *testing.T) {
	require.NoError(t, ValidateProfileInput(validInput()))
}

func TestValidateProfileInput_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProfileInput)
		errMsg string
	}{
		{"last name", func(in *ProfileInput) { in.LastName = "  " }, "champ requis : le nom"},
		{"first name", func(in *ProfileInput) { in.FirstName = "" }, "champ requis : le prénom"},
		{"photo", func(in *ProfileInput) { in.PhotoPath = "" }, "champ requis : la photo"},
		{"height", func(in *ProfileInput) { in.HeightCm = nil }, "champ requis : la taille"},
		{"nationalities", func(in *ProfileInput) { in.Nationalities = nil }, "champ requis : la nationalité"},
		{"strong foot enum", func(in *ProfileInput) { in.StrongFoot = "Main" }, "pied fort invalide"},
		{"bad color", func(in *ProfileInput) { in.CVColor = "red" }, "couleur invalide"},
		{"bad birth date", func(in *ProfileInput) { in.BirthDate = "12/04/2008" }, "date invalide"},
		{"bad transfermarkt", func(in *ProfileInput) { in.TransfermarktURL = strPtr("not a url") }, "Transfermarkt"},
		{"bad email", func(in *ProfileInput) { in.Email = "abc" }, "e-mail invalide"},
		{"bad phone", func(in *ProfileInput) { in.Phone = "abc" }, "téléphone invalide"},
		{"bad agent email", func(in *ProfileInput) { in.AgentEmail = strPtr("agent@") }, "agent"},
		{"no season", func(in *ProfileInput) { in.Seasons = nil }, "au moins une saison"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := ValidateProfileInput(in)
			require.Error(t, err)
			assert.True(t, IsCode(err, CodeValidation))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateProfileInput_QualityBounds(t *testing.T) {
	label24 := strings.Repeat("a", 24)
	make6 := func(label string, n int) []QualityInput {
		qs := make([]QualityInput, n)
		for i := range qs {
			qs[i] = QualityInput{Label: label}
		}
		return qs
	}

	tests := []struct {
		name      string
		qualities []QualityInput
		wantErr   bool
	}{
		{"zero qualities", nil, true},
		{"seven qualities", make6("Vitesse", 7), true},
		{"25 characters", []QualityInput{{Label: strings.Repeat("a", 25)}}, true},
		{"blank label", []QualityInput{{Label: "   "}}, true},
		{"six of 24 characters", make6(label24, 6), false},
		{"accents count as one", []QualityInput{{Label: strings.Repeat("é", 24)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Qualities = tt.qualities
			err := ValidateProfileInput(in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateProfileInput_SeasonRules(t *testing.T) {
	t.Run("past season without matches fails", func(t *testing.T) {
		in := validInput()
		in.Seasons[0].Matches = nil
		err := ValidateProfileInput(in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Saison 1 : le nombre de matchs est requis")
	})

	t.Run("current season without matches passes", func(t *testing.T) {
		in := validInput()
		in.Seasons[0].Matches = nil
		in.Seasons[0].IsCurrentSeason = true
		require.NoError(t, ValidateProfileInput(in))
	})

	t.Run("index is one-based", func(t *testing.T) {
		in := validInput()
		second := in.Seasons[0]
		second.Division = "Premier League"
		in.Seasons = append(in.Seasons, second)
		err := ValidateProfileInput(in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Saison 2 : division invalide")
	})

	t.Run("negative goals", func(t *testing.T) {
		in := validInput()
		in.Seasons[0].Goals = intPtr(-1)
		require.Error(t, ValidateProfileInput(in))
	})

	t.Run("playing time bounds", func(t *testing.T) {
		for _, v := range []int{0, 91} {
			in := validInput()
			in.Seasons[0].AvgPlayingTimeMin = intPtr(v)
			require.Error(t, ValidateProfileInput(in), "avg playing time %d", v)
		}
		in := validInput()
		in.Seasons[0].AvgPlayingTimeMin = intPtr(90)
		require.NoError(t, ValidateProfileInput(in))
	})

	t.Run("missing division logo", func(t *testing.T) {
		in := validInput()
		in.Seasons[0].LogoDivisionPath = ""
		require.Error(t, ValidateProfileInput(in))
	})
}

func TestValidateProfileInput_FormationsAndInterests(t *testing.T) {
	t.Run("title too long", func(t *testing.T) {
		in := validInput()
		in.Formations = []FormationInput{{PeriodLabel: "2019-2021", Title: strings.Repeat("x", 1001)}}
		err := ValidateProfileInput(in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Formation 1")
	})

	t.Run("details must be text", func(t *testing.T) {
		in := validInput()
		in.Formations = []FormationInput{{PeriodLabel: "2019", Title: "Pôle Espoirs", Details: json.RawMessage(`42`)}}
		err := ValidateProfileInput(in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "texte")
	})

	t.Run("details null accepted", func(t *testing.T) {
		in := validInput()
		in.Formations = []FormationInput{{PeriodLabel: "2019", Title: "Pôle Espoirs", Details: json.RawMessage(`null`)}}
		require.NoError(t, ValidateProfileInput(in))
	})

	t.Run("interest year", func(t *testing.T) {
		in := validInput()
		in.Interests = []InterestInput{{Club: "OL", Year: "24", LogoClubPath: "logos/ol.png"}}
		err := ValidateProfileInput(in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Intérêt 1")
	})
}

func TestValidateProfilePatch(t *testing.T) {
	t.Run("empty patch", func(t *testing.T) {
		err := ValidateProfilePatch(ProfilePatch{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "aucun champ")
	})

	t.Run("status must be known", func(t *testing.T) {
		err := ValidateProfilePatch(ProfilePatch{Status: Some(ProfileStatus("Fini"))})
		require.Error(t, err)
		require.NoError(t, ValidateProfilePatch(ProfilePatch{Status: Some(StatusDone)}))
	})

	t.Run("required field cannot be nulled", func(t *testing.T) {
		err := ValidateProfilePatch(ProfilePatch{Email: Null[string]()})
		require.Error(t, err)
	})

	t.Run("optional field can be nulled", func(t *testing.T) {
		require.NoError(t, ValidateProfilePatch(ProfilePatch{WingspanCm: Null[int]()}))
	})

	t.Run("quality bounds apply to updates", func(t *testing.T) {
		empty := []QualityInput{}
		require.Error(t, ValidateProfilePatch(ProfilePatch{Qualities: &empty}))
	})

	t.Run("seasons only", func(t *testing.T) {
		seasons := validInput().Seasons
		require.NoError(t, ValidateProfilePatch(ProfilePatch{Seasons: &seasons}))
	})
}

// --- Payload Decoding Tests ---

func TestProfilePatch_Decode(t *testing.T) {
	var p ProfilePatch
	require.NoError(t, json.Unmarshal([]byte(`{"firstName":"Léo","wingspanCm":null,"qualities":["Vitesse",{"label":"Frappe","order":4}]}`), &p))

	assert.True(t, p.FirstName.Set)
	assert.Equal(t, "Léo", p.FirstName.Value)
	assert.True(t, p.WingspanCm.Set)
	assert.True(t, p.WingspanCm.Null)
	assert.False(t, p.LastName.Set)
	require.NotNil(t, p.Qualities)
	require.Len(t, *p.Qualities, 2)
	assert.Equal(t, "Vitesse", (*p.Qualities)[0].Label)
	assert.Nil(t, (*p.Qualities)[0].Order)
	assert.Equal(t, 4, *(*p.Qualities)[1].Order)
	assert.Nil(t, p.Seasons)
	assert.True(t, p.HasScalars())
	assert.True(t, p.HasChildren())
}

func TestNationalities(t *testing.T) {
	t.Run("json array round-trips", func(t *testing.T) {
		list := []string{"France", "Maroc"}
		assert.Equal(t, list, DecodeNationalities(EncodeNationalities(list)))
	})

	t.Run("bare string becomes single element", func(t *testing.T) {
		assert.Equal(t, []string{"France"}, DecodeNationalities("France"))
	})

	t.Run("json object is not a list", func(t *testing.T) {
		assert.Equal(t, []string{`{"a":1}`}, DecodeNationalities(`{"a":1}`))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, DecodeNationalities(""))
		assert.Equal(t, "[]", EncodeNationalities(nil))
	})
}

// --- Error Tests ---

func TestAppError(t *testing.T) {
	cause := errors.New("disk full")
	err := ErrStorage("create profile", cause)
	assert.Equal(t, 500, err.Status)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")

	assert.True(t, IsCode(ErrNotFound("profil", "x"), CodeNotFound))
	assert.False(t, IsCode(cause, CodeNotFound))
}

func TestPlayerProfile_Helpers(t *testing.T) {
	p := PlayerProfile{FirstName: "Leo", LastName: "Martin", PrimaryPosition: "DC", SecondaryPosition: strPtr("GB")}
	assert.Equal(t, "CV_Leo_Martin.pdf", p.DocumentFileName("pdf"))
	assert.True(t, p.IsGoalkeeper())
}

func TestValidate_OrderOutOfRange(t *testing.T) {
	huge := intPtr(1 << 40)

	t.Run("quality", func(t *testing.T) {
		in := validInput()
		in.Qualities = append(in.Qualities, QualityInput{Label: "Vision", Order: huge})
		err := ValidateProfileInput(in)
		require.Error(t, err)
		assert.True(t, IsCode(err, CodeValidation))
		assert.Contains(t, err.Error(), "Qualité 2 : ordre hors limites")
	})

	t.Run("season", func(t *testing.T) {
		in := validInput()
		in.Seasons[0].Order = huge
		err := ValidateProfileInput(in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Saison 1 : ordre hors limites")
	})

	t.Run("season stat", func(t *testing.T) {
		in := validInput()
		in.Seasons[0].Goals = huge
		require.Error(t, ValidateProfileInput(in))
	})

	t.Run("formation in a patch", func(t *testing.T) {
		formations := []FormationInput{{PeriodLabel: "2019 - 2021", Title: "Pôle Espoirs", Order: intPtr(-(1 << 40))}}
		err := ValidateProfilePatch(ProfilePatch{Formations: &formations})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Formation 1 : ordre hors limites")
	})

	t.Run("interest", func(t *testing.T) {
		in := validInput()
		in.Interests = []InterestInput{{Club: "FC Nantes", Year: "2024", LogoClubPath: "logos/fcn.png", Order: huge}}
		err := ValidateProfileInput(in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Intérêt 1 : ordre hors limites")
	})

	t.Run("int32 bounds pass", func(t *testing.T) {
		in := validInput()
		in.Qualities[0].Order = intPtr(math.MaxInt32)
		require.NoError(t, ValidateProfileInput(in))
	})
}
