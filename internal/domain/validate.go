package domain

import (
	"fmt"
	"math"
	"strings"
)

// French field names used in validation messages.
const (
	fieldLastName        = "le nom"
	fieldFirstName       = "le prénom"
	fieldNationalities   = "la nationalité"
	fieldBirthDate       = "la date de naissance"
	fieldStrongFoot      = "le pied fort"
	fieldHeight          = "la taille"
	fieldCVColor         = "la couleur du CV"
	fieldPrimaryPosition = "le poste principal"
	fieldPhoto           = "la photo"
	fieldEmail           = "l'e-mail"
	fieldPhone           = "le téléphone"
)

func required(field string) *AppError {
	return ErrValidation("champ requis : " + field)
}

// ValidateProfileInput applies the create rule-set. Validation stops at the first failure.
func ValidateProfileInput(in ProfileInput) error {
	for _, r := range []struct {
		value string
		field string
	}{
		{in.LastName, fieldLastName},
		{in.FirstName, fieldFirstName},
		{in.BirthDate, fieldBirthDate},
		{string(in.StrongFoot), fieldStrongFoot},
		{in.CVColor, fieldCVColor},
		{in.PrimaryPosition, fieldPrimaryPosition},
		{in.PhotoPath, fieldPhoto},
		{in.Email, fieldEmail},
		{in.Phone, fieldPhone},
	} {
		if blank(r.value) {
			return required(r.field)
		}
	}
	if in.HeightCm == nil {
		return required(fieldHeight)
	}
	if err := validateNationalities(in.Nationalities); err != nil {
		return err
	}
	if err := validateBirthDate(in.BirthDate); err != nil {
		return err
	}
	if err := validateStrongFoot(in.StrongFoot); err != nil {
		return err
	}
	if err := validateHeight(*in.HeightCm); err != nil {
		return err
	}
	if in.WingspanCm != nil {
		if err := validateWingspan(*in.WingspanCm); err != nil {
			return err
		}
	}
	if in.VMA != nil {
		if err := validateVMA(*in.VMA); err != nil {
			return err
		}
	}
	if err := validateColor(in.CVColor); err != nil {
		return err
	}
	if err := validateTransfermarkt(in.TransfermarktURL); err != nil {
		return err
	}
	if err := validateContact(in.Email, in.Phone); err != nil {
		return err
	}
	if err := validateAgent(in.AgentEmail, in.AgentPhone); err != nil {
		return err
	}
	if err := validateQualities(in.Qualities); err != nil {
		return err
	}
	if len(in.Seasons) == 0 {
		return ErrValidation("au moins une saison est requise")
	}
	if err := validateSeasons(in.Seasons); err != nil {
		return err
	}
	if err := validateFormations(in.Formations); err != nil {
		return err
	}
	return validateInterests(in.Interests)
}

// ValidateProfilePatch applies the same rules to the fields present in an update.
func ValidateProfilePatch(p ProfilePatch) error {
	if p.IsEmpty() {
		return ErrValidation("aucun champ à mettre à jour")
	}

	for _, r := range []struct {
		opt   Optional[string]
		field string
	}{
		{p.LastName, fieldLastName},
		{p.FirstName, fieldFirstName},
		{p.BirthDate, fieldBirthDate},
		{p.CVColor, fieldCVColor},
		{p.PrimaryPosition, fieldPrimaryPosition},
		{p.PhotoPath, fieldPhoto},
		{p.Email, fieldEmail},
		{p.Phone, fieldPhone},
	} {
		if r.opt.Set && (r.opt.Null || blank(r.opt.Value)) {
			return ErrValidation(r.field + " ne peut pas être vide")
		}
	}
	if p.StrongFoot.Set && p.StrongFoot.Null {
		return ErrValidation(fieldStrongFoot + " ne peut pas être vide")
	}
	if p.HeightCm.Set && p.HeightCm.Null {
		return ErrValidation(fieldHeight + " ne peut pas être vide")
	}
	if p.Nationalities.Set {
		if err := validateNationalities(p.Nationalities.Value); err != nil {
			return err
		}
	}
	if p.BirthDate.Set {
		if err := validateBirthDate(p.BirthDate.Value); err != nil {
			return err
		}
	}
	if p.StrongFoot.Set {
		if err := validateStrongFoot(p.StrongFoot.Value); err != nil {
			return err
		}
	}
	if p.HeightCm.Set {
		if err := validateHeight(p.HeightCm.Value); err != nil {
			return err
		}
	}
	if p.WingspanCm.Set && !p.WingspanCm.Null {
		if err := validateWingspan(p.WingspanCm.Value); err != nil {
			return err
		}
	}
	if p.VMA.Set && !p.VMA.Null {
		if err := validateVMA(p.VMA.Value); err != nil {
			return err
		}
	}
	if p.CVColor.Set {
		if err := validateColor(p.CVColor.Value); err != nil {
			return err
		}
	}
	if p.TransfermarktURL.Set {
		if err := validateTransfermarkt(p.TransfermarktURL.Ptr()); err != nil {
			return err
		}
	}
	if p.Email.Set {
		if err := ValidateEmail(p.Email.Value); err != nil {
			return ErrValidation(err.Error())
		}
	}
	if p.Phone.Set {
		if err := ValidatePhone(p.Phone.Value); err != nil {
			return ErrValidation(err.Error())
		}
	}
	if err := validateAgent(optionalPtr(p.AgentEmail), optionalPtr(p.AgentPhone)); err != nil {
		return err
	}
	if p.Status.Set {
		if p.Status.Null || !p.Status.Value.Valid() {
			return ErrValidation(fmt.Sprintf("statut invalide : doit être %q ou %q", StatusPending, StatusDone))
		}
	}
	if p.Archived.Set && p.Archived.Null {
		return ErrValidation("archivé ne peut pas être vide")
	}
	if p.Qualities != nil {
		if err := validateQualities(*p.Qualities); err != nil {
			return err
		}
	}
	if p.Seasons != nil {
		if err := validateSeasons(*p.Seasons); err != nil {
			return err
		}
	}
	if p.Formations != nil {
		if err := validateFormations(*p.Formations); err != nil {
			return err
		}
	}
	if p.Interests != nil {
		if err := validateInterests(*p.Interests); err != nil {
			return err
		}
	}
	return nil
}

func optionalPtr(o Optional[string]) *string {
	if !o.Set {
		return nil
	}
	return o.Ptr()
}

func validateNationalities(list []string) error {
	if len(list) == 0 {
		return required(fieldNationalities)
	}
	for _, n := range list {
		if blank(n) {
			return ErrValidation(fieldNationalities + " ne peut pas être vide")
		}
	}
	return nil
}

func validateBirthDate(raw string) error {
	if err := ValidateDate(raw); err != nil {
		return ErrValidation(err.Error())
	}
	return nil
}

func validateStrongFoot(f StrongFoot) error {
	if !f.Valid() {
		return ErrValidation(fmt.Sprintf("pied fort invalide : doit être %s, %s ou %s", FootRight, FootLeft, FootAmbidexter))
	}
	return nil
}

func validateHeight(cm int) error {
	if cm < 100 || cm > 250 {
		return ErrValidation(fmt.Sprintf("taille invalide : %d cm", cm))
	}
	return nil
}

func validateWingspan(cm int) error {
	if cm < 100 || cm > 280 {
		return ErrValidation(fmt.Sprintf("envergure invalide : %d cm", cm))
	}
	return nil
}

func validateVMA(v float64) error {
	if v <= 0 || v > 30 {
		return ErrValidation(fmt.Sprintf("VMA invalide : %g", v))
	}
	return nil
}

func validateColor(c string) error {
	if err := ValidateColor(c); err != nil {
		return ErrValidation(err.Error())
	}
	return nil
}

func validateTransfermarkt(raw *string) error {
	if raw == nil || blank(*raw) {
		return nil
	}
	if err := ValidateAbsoluteURL(strings.TrimSpace(*raw)); err != nil {
		return ErrValidation("lien Transfermarkt : " + err.Error())
	}
	return nil
}

func validateContact(email, phone string) error {
	if err := ValidateEmail(email); err != nil {
		return ErrValidation(err.Error())
	}
	if err := ValidatePhone(phone); err != nil {
		return ErrValidation(err.Error())
	}
	return nil
}

func validateAgent(email, phone *string) error {
	if email != nil && !blank(*email) {
		if err := ValidateEmail(*email); err != nil {
			return ErrValidation("agent : " + err.Error())
		}
	}
	if phone != nil && !blank(*phone) {
		if err := ValidatePhone(*phone); err != nil {
			return ErrValidation("agent : " + err.Error())
		}
	}
	return nil
}

func validateQualities(qs []QualityInput) error {
	if len(qs) == 0 {
		return ErrValidation("au moins une qualité est requise")
	}
	if len(qs) > MaxQualities {
		return ErrValidation(fmt.Sprintf("%d qualités maximum", MaxQualities))
	}
	for i, q := range qs {
		label := strings.TrimSpace(q.Label)
		if label == "" {
			return ErrValidation(fmt.Sprintf("Qualité %d : le libellé est requis", i+1))
		}
		if runeLen(label) > MaxQualityLength {
			return ErrValidation(fmt.Sprintf("Qualité %d : %d caractères maximum", i+1, MaxQualityLength))
		}
		if err := validateOrder("Qualité", i+1, q.Order); err != nil {
			return err
		}
	}
	return nil
}

func validateSeasons(ss []SeasonInput) error {
	for i, s := range ss {
		n := i + 1
		switch {
		case blank(s.Club):
			return ErrValidation(fmt.Sprintf("Saison %d : le club est requis", n))
		case blank(s.Category):
			return ErrValidation(fmt.Sprintf("Saison %d : la catégorie est requise", n))
		case !ValidDivision(s.Division):
			return ErrValidation(fmt.Sprintf("Saison %d : division invalide (%s)", n, s.Division))
		case blank(s.LogoClubPath):
			return ErrValidation(fmt.Sprintf("Saison %d : le logo du club est requis", n))
		case blank(s.LogoDivisionPath):
			return ErrValidation(fmt.Sprintf("Saison %d : le logo de la division est requis", n))
		case !s.IsCurrentSeason && s.Matches == nil:
			return ErrValidation(fmt.Sprintf("Saison %d : le nombre de matchs est requis", n))
		}
		if s.PeriodType != nil && !s.PeriodType.Valid() {
			return ErrValidation(fmt.Sprintf("Saison %d : type de période invalide (%s)", n, *s.PeriodType))
		}
		for _, stat := range []struct {
			v    *int
			name string
		}{
			{s.Matches, "matchs"},
			{s.Goals, "buts"},
			{s.Assists, "passes décisives"},
			{s.CleanSheets, "clean sheets"},
		} {
			if stat.v != nil && *stat.v < 0 {
				return ErrValidation(fmt.Sprintf("Saison %d : le nombre de %s doit être positif", n, stat.name))
			}
			if stat.v != nil && *stat.v > math.MaxInt32 {
				return ErrValidation(fmt.Sprintf("Saison %d : le nombre de %s est trop grand", n, stat.name))
			}
		}
		if s.AvgPlayingTimeMin != nil && (*s.AvgPlayingTimeMin < 1 || *s.AvgPlayingTimeMin > 90) {
			return ErrValidation(fmt.Sprintf("Saison %d : le temps de jeu moyen doit être compris entre 1 et 90 minutes", n))
		}
		if err := validateOrder("Saison", n, s.Order); err != nil {
			return err
		}
	}
	return nil
}

func validateFormations(fs []FormationInput) error {
	for i, f := range fs {
		n := i + 1
		if blank(f.PeriodLabel) {
			return ErrValidation(fmt.Sprintf("Formation %d : la période est requise", n))
		}
		if blank(f.Title) {
			return ErrValidation(fmt.Sprintf("Formation %d : le titre est requis", n))
		}
		if runeLen(f.Title) > MaxFormationLength {
			return ErrValidation(fmt.Sprintf("Formation %d : titre limité à %d caractères", n, MaxFormationLength))
		}
		details, ok := f.DetailsText()
		if !ok {
			return ErrValidation(fmt.Sprintf("Formation %d : les détails doivent être du texte", n))
		}
		if details != nil && runeLen(*details) > MaxFormationLength {
			return ErrValidation(fmt.Sprintf("Formation %d : détails limités à %d caractères", n, MaxFormationLength))
		}
		if err := validateOrder("Formation", n, f.Order); err != nil {
			return err
		}
	}
	return nil
}

func validateInterests(is []InterestInput) error {
	for i, it := range is {
		n := i + 1
		switch {
		case blank(it.Club):
			return ErrValidation(fmt.Sprintf("Intérêt %d : le club est requis", n))
		case blank(it.Year):
			return ErrValidation(fmt.Sprintf("Intérêt %d : l'année est requise", n))
		case blank(it.LogoClubPath):
			return ErrValidation(fmt.Sprintf("Intérêt %d : le logo du club est requis", n))
		}
		if err := ValidateYear(strings.TrimSpace(it.Year)); err != nil {
			return ErrValidation(fmt.Sprintf("Intérêt %d : %s", n, err.Error()))
		}
		if err := validateOrder("Intérêt", n, it.Order); err != nil {
			return err
		}
	}
	return nil
}

// validateOrder keeps an explicit order within the INTEGER sort_order column.
func validateOrder(item string, n int, order *int) error {
	if order != nil && (*order < math.MinInt32 || *order > math.MaxInt32) {
		return ErrValidation(fmt.Sprintf("%s %d : ordre hors limites", item, n))
	}
	return nil
}
