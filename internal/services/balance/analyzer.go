package balance

import (
	"AstroEngine/internal/domain/models"
)

// DefaultWeights grade each body's contribution to the distribution.
// Luminaries dominate, personal planets follow, outer planets and
// points trail off.
func DefaultWeights() map[models.Body]float64 {
	return map[models.Body]float64{
		models.Sun:       10,
		models.Moon:      10,
		models.Mercury:   8,
		models.Venus:     7,
		models.Mars:      7,
		models.Jupiter:   6,
		models.Saturn:    6,
		models.Uranus:    4,
		models.Neptune:   4,
		models.Pluto:     4,
		models.Chiron:    3,
		models.NorthNode: 2,
		models.SouthNode: 2,
	}
}

// Analyzer turns a position set into weighted element and modality
// distributions. Bodies without a weight are ignored.
type Analyzer struct {
	traits  map[models.Sign]models.SignTrait
	weights map[models.Body]float64
}

// NewAnalyzer builds an analyzer with the default tables.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		traits:  models.DefaultSignTraits(),
		weights: DefaultWeights(),
	}
}

// Elements computes the weighted element percentages. They sum to 100
// unless no weighted body is present, in which case all are zero.
func (a *Analyzer) Elements(positions models.PositionSet) models.ElementBalance {
	totals := map[models.Element]float64{}
	sum := 0.0
	for body, pos := range positions {
		w, ok := a.weights[body]
		if !ok {
			continue
		}
		totals[a.traits[pos.Sign].Element] += w
		sum += w
	}
	if sum == 0 {
		return models.ElementBalance{}
	}
	return models.ElementBalance{
		Fire:  100 * totals[models.Fire] / sum,
		Earth: 100 * totals[models.Earth] / sum,
		Air:   100 * totals[models.Air] / sum,
		Water: 100 * totals[models.Water] / sum,
	}
}

// Modalities computes the weighted modality percentages.
func (a *Analyzer) Modalities(positions models.PositionSet) models.ModalityBalance {
	totals := map[models.Modality]float64{}
	sum := 0.0
	for body, pos := range positions {
		w, ok := a.weights[body]
		if !ok {
			continue
		}
		totals[a.traits[pos.Sign].Modality] += w
		sum += w
	}
	if sum == 0 {
		return models.ModalityBalance{}
	}
	return models.ModalityBalance{
		Cardinal: 100 * totals[models.Cardinal] / sum,
		Fixed:    100 * totals[models.Fixed] / sum,
		Mutable:  100 * totals[models.Mutable] / sum,
	}
}

// DominantElement names the heaviest element, empty for an empty
// distribution. Ties resolve in the fixed order fire, earth, air,
// water.
func DominantElement(b models.ElementBalance) models.Element {
	if b.Fire == 0 && b.Earth == 0 && b.Air == 0 && b.Water == 0 {
		return ""
	}
	best, bestVal := models.Fire, b.Fire
	for _, c := range []struct {
		e models.Element
		v float64
	}{{models.Earth, b.Earth}, {models.Air, b.Air}, {models.Water, b.Water}} {
		if c.v > bestVal {
			best, bestVal = c.e, c.v
		}
	}
	return best
}

// DominantModality names the heaviest modality, empty for an empty
// distribution. Ties resolve in the fixed order cardinal, fixed,
// mutable.
func DominantModality(b models.ModalityBalance) models.Modality {
	if b.Cardinal == 0 && b.Fixed == 0 && b.Mutable == 0 {
		return ""
	}
	best, bestVal := models.Cardinal, b.Cardinal
	if b.Fixed > bestVal {
		best, bestVal = models.Fixed, b.Fixed
	}
	if b.Mutable > bestVal {
		best = models.Mutable
	}
	return best
}
