package usecase

import "AstroEngine/internal/domain/models"

// dignityTable maps each classical placement to its essential dignity.
// Evaluation order is rulership, exaltation, detriment, fall; the
// first hit wins.
type dignityTable struct {
	rulership  map[models.Body][]models.Sign
	exaltation map[models.Body]models.Sign
	detriment  map[models.Body][]models.Sign
	fall       map[models.Body]models.Sign
}

func defaultDignities() dignityTable {
	return dignityTable{
		rulership: map[models.Body][]models.Sign{
			models.Sun:     {models.Leo},
			models.Moon:    {models.Cancer},
			models.Mercury: {models.Gemini, models.Virgo},
			models.Venus:   {models.Taurus, models.Libra},
			models.Mars:    {models.Aries, models.Scorpio},
			models.Jupiter: {models.Sagittarius, models.Pisces},
			models.Saturn:  {models.Capricorn, models.Aquarius},
			models.Uranus:  {models.Aquarius},
			models.Neptune: {models.Pisces},
			models.Pluto:   {models.Scorpio},
		},
		exaltation: map[models.Body]models.Sign{
			models.Sun:     models.Aries,
			models.Moon:    models.Taurus,
			models.Mercury: models.Virgo,
			models.Venus:   models.Pisces,
			models.Mars:    models.Capricorn,
			models.Jupiter: models.Cancer,
			models.Saturn:  models.Libra,
		},
		detriment: map[models.Body][]models.Sign{
			models.Sun:     {models.Aquarius},
			models.Moon:    {models.Capricorn},
			models.Mercury: {models.Sagittarius, models.Pisces},
			models.Venus:   {models.Scorpio, models.Aries},
			models.Mars:    {models.Libra, models.Taurus},
			models.Jupiter: {models.Gemini, models.Virgo},
			models.Saturn:  {models.Cancer, models.Leo},
			models.Uranus:  {models.Leo},
			models.Neptune: {models.Virgo},
			models.Pluto:   {models.Taurus},
		},
		fall: map[models.Body]models.Sign{
			models.Sun:     models.Libra,
			models.Moon:    models.Scorpio,
			models.Mercury: models.Pisces,
			models.Venus:   models.Virgo,
			models.Mars:    models.Cancer,
			models.Jupiter: models.Capricorn,
			models.Saturn:  models.Aries,
		},
	}
}

// dignityOf resolves the essential dignity of a body in a sign, if any.
func (t dignityTable) dignityOf(body models.Body, sign models.Sign) (models.Dignity, bool) {
	for _, s := range t.rulership[body] {
		if s == sign {
			return models.Rulership, true
		}
	}
	if s, ok := t.exaltation[body]; ok && s == sign {
		return models.Exaltation, true
	}
	for _, s := range t.detriment[body] {
		if s == sign {
			return models.Detriment, true
		}
	}
	if s, ok := t.fall[body]; ok && s == sign {
		return models.Fall, true
	}
	return "", false
}
