package domain

import "encoding/json"

// Input converts a loaded aggregate back into a create payload, keeping the stored orders.
// Used to duplicate a profile.
func (p *Profile) Input() ProfileInput {
	height := p.HeightCm
	in := ProfileInput{
		LastName:          p.LastName,
		FirstName:         p.FirstName,
		Nationalities:     append([]string(nil), p.Nationalities...),
		BirthDate:         p.BirthDate,
		StrongFoot:        p.StrongFoot,
		HeightCm:          &height,
		WingspanCm:        p.WingspanCm,
		VMA:               p.VMA,
		CVColor:           p.CVColor,
		PrimaryPosition:   p.PrimaryPosition,
		SecondaryPosition: p.SecondaryPosition,
		TransfermarktURL:  p.TransfermarktURL,
		PhotoPath:         p.PhotoPath,
		Email:             p.Email,
		Phone:             p.Phone,
		AgentEmail:        p.AgentEmail,
		AgentPhone:        p.AgentPhone,
	}
	for _, q := range p.Qualities {
		order := q.Order
		in.Qualities = append(in.Qualities, QualityInput{Label: q.Label, Order: &order})
	}
	for _, s := range p.Seasons {
		order := s.Order
		in.Seasons = append(in.Seasons, SeasonInput{
			Club:              s.Club,
			Category:          s.Category,
			Division:          s.Division,
			Period:            s.Period,
			IsMidSeason:       s.IsMidSeason,
			PeriodType:        s.PeriodType,
			LogoClubPath:      s.LogoClubPath,
			LogoDivisionPath:  s.LogoDivisionPath,
			Captain:           s.Captain,
			OverAged:          s.OverAged,
			Champion:          s.Champion,
			CupWon:            s.CupWon,
			Matches:           s.Matches,
			Goals:             s.Goals,
			Assists:           s.Assists,
			AvgPlayingTimeMin: s.AvgPlayingTimeMin,
			CleanSheets:       s.CleanSheets,
			IsCurrentSeason:   s.IsCurrentSeason,
			Order:             &order,
		})
	}
	for _, f := range p.Formations {
		order := f.Order
		fi := FormationInput{PeriodLabel: f.PeriodLabel, Title: f.Title, Order: &order}
		if f.Details != nil {
			fi.Details, _ = json.Marshal(*f.Details)
		}
		in.Formations = append(in.Formations, fi)
	}
	for _, it := range p.Interests {
		order := it.Order
		in.Interests = append(in.Interests, InterestInput{Club: it.Club, Year: it.Year, LogoClubPath: it.LogoClubPath, Order: &order})
	}
	return in
}
