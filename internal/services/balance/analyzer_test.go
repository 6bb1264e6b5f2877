package balance

import (
	"math"
	"testing"

	"AstroEngine/internal/domain/models"
)

func posIn(sign models.Sign) models.CelestialPosition {
	lon := float64(sign)*30 + 15
	return models.CelestialPosition{Longitude: lon, Sign: sign, Degree: 15}
}

func TestElementsSumTo100(t *testing.T) {
	a := NewAnalyzer()
	positions := models.PositionSet{
		models.Sun:     posIn(models.Aries),   // fire, 10
		models.Moon:    posIn(models.Taurus),  // earth, 10
		models.Mercury: posIn(models.Gemini),  // air, 8
		models.Venus:   posIn(models.Cancer),  // water, 7
		models.Mars:    posIn(models.Leo),     // fire, 7
		models.Jupiter: posIn(models.Virgo),   // earth, 6
		models.Saturn:  posIn(models.Libra),   // air, 6
		models.Uranus:  posIn(models.Scorpio), // water, 4
	}
	b := a.Elements(positions)
	total := b.Fire + b.Earth + b.Air + b.Water
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("element percentages sum to %.6f", total)
	}
	// fire carries sun 10 + mars 7 of 58 total
	if math.Abs(b.Fire-100*17.0/58.0) > 1e-9 {
		t.Errorf("fire = %.4f, want %.4f", b.Fire, 100*17.0/58.0)
	}
}

func TestModalities(t *testing.T) {
	a := NewAnalyzer()
	positions := models.PositionSet{
		models.Sun:  posIn(models.Aries),  // cardinal, 10
		models.Moon: posIn(models.Taurus), // fixed, 10
	}
	b := a.Modalities(positions)
	if math.Abs(b.Cardinal-50) > 1e-9 || math.Abs(b.Fixed-50) > 1e-9 || b.Mutable != 0 {
		t.Errorf("modalities = %+v, want 50/50/0", b)
	}
}

func TestEmptySetIsAllZero(t *testing.T) {
	a := NewAnalyzer()
	if b := a.Elements(models.PositionSet{}); b != (models.ElementBalance{}) {
		t.Errorf("empty set elements = %+v", b)
	}
	if b := a.Modalities(models.PositionSet{}); b != (models.ModalityBalance{}) {
		t.Errorf("empty set modalities = %+v", b)
	}
}

func TestUnweightedBodiesIgnored(t *testing.T) {
	a := NewAnalyzer()
	positions := models.PositionSet{
		models.Sun:       posIn(models.Aries),
		models.Ascendant: posIn(models.Pisces), // angles carry no weight
	}
	b := a.Elements(positions)
	if math.Abs(b.Fire-100) > 1e-9 || b.Water != 0 {
		t.Errorf("ascendant should not contribute: %+v", b)
	}
}

func TestDominantHelpers(t *testing.T) {
	if d := DominantElement(models.ElementBalance{Fire: 40, Earth: 30, Air: 20, Water: 10}); d != models.Fire {
		t.Errorf("dominant element = %s, want fire", d)
	}
	if d := DominantElement(models.ElementBalance{}); d != "" {
		t.Errorf("empty balance dominant = %q, want empty", d)
	}
	// ties resolve in table order
	if d := DominantElement(models.ElementBalance{Fire: 50, Water: 50}); d != models.Fire {
		t.Errorf("tie should resolve to fire, got %s", d)
	}
	if d := DominantModality(models.ModalityBalance{Cardinal: 20, Fixed: 30, Mutable: 50}); d != models.Mutable {
		t.Errorf("dominant modality = %s, want mutable", d)
	}
	if d := DominantModality(models.ModalityBalance{}); d != "" {
		t.Errorf("empty balance dominant = %q, want empty", d)
	}
}
